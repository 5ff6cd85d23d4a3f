package model

type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Closing reports whether moving to s should be preceded by a payment check.
func (s EventStatus) Closing() bool {
	return s == EventStatusCompleted || s == EventStatusCancelled
}

// CustomerEvent is a billable job. CustomerName is a snapshot taken when the
// job is written and is not refreshed when the customer is renamed.
type CustomerEvent struct {
	EventNo            string      `json:"event_no"`
	Name               string      `json:"event_name"`
	CustomerID         string      `json:"customer_id"`
	ProductID          string      `json:"product_id"`
	CustomerName       string      `json:"customer_name"`
	Quantity           float64     `json:"quantity"`
	AgreedAmount       float64     `json:"agreed_amount"`
	EventDate          Date        `json:"event_date"`
	ExpectedFinishDate *Date       `json:"expected_finishing_date,omitempty"`
	Status             EventStatus `json:"status"`
}

func (e *CustomerEvent) Key() string      { return e.EventNo }
func (e *CustomerEvent) SetKey(id string) { e.EventNo = id }
func (e *CustomerEvent) Validate() error {
	switch {
	case blank(e.Name):
		return invalid("event name is required")
	case blank(e.CustomerID):
		return invalid("customer is required")
	case blank(e.ProductID):
		return invalid("product is required")
	case e.Quantity <= 0:
		return invalid("quantity must be greater than zero")
	case e.AgreedAmount < 0:
		return invalid("agreed amount must not be negative")
	case e.EventDate.IsZero():
		return invalid("event date is required")
	case !e.Status.Valid():
		return invalid("unknown event status %q", e.Status)
	}
	return nil
}

// CustomerEventPatch carries no status; status changes go through
// UpdateStatus so the payment check stays in front of them.
type CustomerEventPatch struct {
	Name                    *string  `json:"event_name"`
	ProductID               *string  `json:"product_id"`
	Quantity                *float64 `json:"quantity"`
	AgreedAmount            *float64 `json:"agreed_amount"`
	EventDate               *Date    `json:"event_date"`
	ExpectedFinishDate      *Date    `json:"expected_finishing_date"`
	ClearExpectedFinishDate bool     `json:"clear_expected_finishing_date"`
}

func (p CustomerEventPatch) Validate() error {
	switch {
	case p.Name != nil && blank(*p.Name):
		return invalid("event name is required")
	case p.ProductID != nil && blank(*p.ProductID):
		return invalid("product is required")
	case p.Quantity != nil && *p.Quantity <= 0:
		return invalid("quantity must be greater than zero")
	case p.AgreedAmount != nil && *p.AgreedAmount < 0:
		return invalid("agreed amount must not be negative")
	case p.EventDate != nil && p.EventDate.IsZero():
		return invalid("event date is required")
	}
	return nil
}

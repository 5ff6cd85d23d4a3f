package model

// DailyEvent is one expense line. It may be linked to a CustomerEvent; the
// link is cleared, not the expense, when that job is deleted.
type DailyEvent struct {
	EventID         string  `json:"event_id"`
	Name            string  `json:"event_name"`
	CustomerID      string  `json:"customer_id"`
	ProductID       *string `json:"product_id,omitempty"`
	CustomerName    string  `json:"customer_name"`
	ExpenseType     string  `json:"expense_type"`
	Description     *string `json:"description,omitempty"`
	Amount          float64 `json:"amount"`
	Date            Date    `json:"event_date"`
	CustomerEventNo *string `json:"customer_event_no,omitempty"`
}

func (e *DailyEvent) Key() string      { return e.EventID }
func (e *DailyEvent) SetKey(id string) { e.EventID = id }
func (e *DailyEvent) Validate() error {
	switch {
	case blank(e.CustomerID):
		return invalid("customer is required")
	case e.Amount <= 0:
		return invalid("amount must be greater than zero")
	case e.Date.IsZero():
		return invalid("date is required")
	}
	return nil
}

type DailyEventPatch struct {
	Name            *string  `json:"event_name"`
	ProductID       *string  `json:"product_id"`
	ExpenseType     *string  `json:"expense_type"`
	Description     *string  `json:"description"`
	Amount          *float64 `json:"amount"`
	Date            *Date    `json:"event_date"`
	CustomerEventNo *string  `json:"customer_event_no"`
}

func (p DailyEventPatch) Validate() error {
	switch {
	case p.Amount != nil && *p.Amount <= 0:
		return invalid("amount must be greater than zero")
	case p.Date != nil && p.Date.IsZero():
		return invalid("date is required")
	}
	return nil
}

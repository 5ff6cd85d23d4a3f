package model

import "time"

// PaymentStatus is entered by the user when recording a payment; it is not
// derived from amounts.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusFull    PaymentStatus = "full"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusFull:
		return true
	}
	return false
}

type Payment struct {
	ID               string        `json:"id"`
	CustomerEventNo  string        `json:"customer_event_no"`
	PayingPersonName string        `json:"paying_person_name"`
	PaymentType      string        `json:"payment_type"`
	Amount           float64       `json:"amount"`
	Status           PaymentStatus `json:"status"`
	ReferenceNumber  *string       `json:"reference_number,omitempty"`
	Notes            *string       `json:"notes,omitempty"`
	PaymentDate      Date          `json:"payment_date"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func (p *Payment) Key() string      { return p.ID }
func (p *Payment) SetKey(id string) { p.ID = id }
func (p *Payment) Validate() error {
	switch {
	case blank(p.CustomerEventNo):
		return invalid("customer event is required")
	case blank(p.PayingPersonName):
		return invalid("paying person name is required")
	case blank(p.PaymentType):
		return invalid("payment type is required")
	case p.Amount <= 0:
		return invalid("amount must be greater than zero")
	case !p.Status.Valid():
		return invalid("unknown payment status %q", p.Status)
	case p.PaymentDate.IsZero():
		return invalid("payment date is required")
	}
	return nil
}

type PaymentPatch struct {
	PayingPersonName *string        `json:"paying_person_name"`
	PaymentType      *string        `json:"payment_type"`
	Amount           *float64       `json:"amount"`
	Status           *PaymentStatus `json:"status"`
	ReferenceNumber  *string        `json:"reference_number"`
	Notes            *string        `json:"notes"`
	PaymentDate      *Date          `json:"payment_date"`
}

func (p PaymentPatch) Validate() error {
	switch {
	case p.PayingPersonName != nil && blank(*p.PayingPersonName):
		return invalid("paying person name is required")
	case p.PaymentType != nil && blank(*p.PaymentType):
		return invalid("payment type is required")
	case p.Amount != nil && *p.Amount <= 0:
		return invalid("amount must be greater than zero")
	case p.Status != nil && !p.Status.Valid():
		return invalid("unknown payment status %q", *p.Status)
	case p.PaymentDate != nil && p.PaymentDate.IsZero():
		return invalid("payment date is required")
	}
	return nil
}

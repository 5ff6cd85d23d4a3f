package model

import "time"

type PaymentModeType string

const (
	PaymentModeCash         PaymentModeType = "cash"
	PaymentModeCard         PaymentModeType = "card"
	PaymentModeBankTransfer PaymentModeType = "bank_transfer"
	PaymentModeUPI          PaymentModeType = "upi"
	PaymentModeCheque       PaymentModeType = "cheque"
	PaymentModeOther        PaymentModeType = "other"
)

func (t PaymentModeType) Valid() bool {
	switch t {
	case PaymentModeCash, PaymentModeCard, PaymentModeBankTransfer,
		PaymentModeUPI, PaymentModeCheque, PaymentModeOther:
		return true
	}
	return false
}

type PaymentMode struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        PaymentModeType `json:"type"`
	Description *string         `json:"description,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (m *PaymentMode) Key() string      { return m.ID }
func (m *PaymentMode) SetKey(id string) { m.ID = id }
func (m *PaymentMode) Validate() error {
	if blank(m.Name) {
		return invalid("payment mode name is required")
	}
	if !m.Type.Valid() {
		return invalid("unknown payment mode type %q", m.Type)
	}
	return nil
}

type PaymentModePatch struct {
	Name        *string          `json:"name"`
	Type        *PaymentModeType `json:"type"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
}

func (p PaymentModePatch) Validate() error {
	if p.Name != nil && blank(*p.Name) {
		return invalid("payment mode name is required")
	}
	if p.Type != nil && !p.Type.Valid() {
		return invalid("unknown payment mode type %q", *p.Type)
	}
	return nil
}

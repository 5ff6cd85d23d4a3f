package model

import "time"

const DefaultExpenseCategory = "general"

// ExpenseType names are unique regardless of case.
type ExpenseType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *ExpenseType) Key() string      { return t.ID }
func (t *ExpenseType) SetKey(id string) { t.ID = id }
func (t *ExpenseType) Validate() error {
	if blank(t.Name) {
		return invalid("expense type name is required")
	}
	return nil
}

type ExpenseTypePatch struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (p ExpenseTypePatch) Validate() error {
	if p.Name != nil && blank(*p.Name) {
		return invalid("expense type name is required")
	}
	return nil
}

package schema

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type seedRow struct {
	name        string
	kind        string
	description string
}

var defaultExpenseTypes = []seedRow{
	{"Materials", "materials", "Raw materials and supplies"},
	{"Labour", "labour", "Wages paid for the job"},
	{"Transport", "transport", "Delivery and travel"},
	{"Fuel", "transport", "Fuel for vehicles and equipment"},
	{"Food", "general", "Meals and refreshments"},
	{"Miscellaneous", "general", "Anything else"},
}

var defaultPaymentModes = []seedRow{
	{"Cash", "cash", "Cash in hand"},
	{"Card", "card", "Debit or credit card"},
	{"Bank Transfer", "bank_transfer", "NEFT, RTGS or IMPS"},
	{"UPI", "upi", "UPI apps"},
	{"Cheque", "cheque", "Bank cheque"},
}

func seedExpenseTypes(tx *gorm.DB) error {
	return seed(tx, TableExpenseTypes, "category", "ET", defaultExpenseTypes)
}

func seedPaymentModes(tx *gorm.DB) error {
	return seed(tx, TablePaymentModes, "type", "PM", defaultPaymentModes)
}

// seed fills an empty lookup table; a table that already has rows is left
// alone so user edits survive re-runs.
func seed(tx *gorm.DB, table, kindColumn, prefix string, rows []seedRow) error {
	var n int64
	if err := tx.Table(table).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for i, r := range rows {
		err := tx.Exec(
			fmt.Sprintf("INSERT INTO %s (id, name, %s, description, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, 1, ?, ?)", table, kindColumn),
			fmt.Sprintf("%s%04d", prefix, i+1), r.name, r.kind, r.description, now, now,
		).Error
		if err != nil {
			return fmt.Errorf("seed %s: %w", table, err)
		}
	}
	return nil
}

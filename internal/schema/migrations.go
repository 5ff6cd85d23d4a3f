package schema

import (
	"gorm.io/gorm"
)

// CurrentVersion is the schema version this build reads and writes.
const CurrentVersion = 9

// Step is one idempotent change. A failed Up is rolled back; when Fallback is
// set it runs next, in its own transaction, to leave Table in its current
// shape (usually empty).
type Step struct {
	Name     string
	Table    string
	Up       func(tx *gorm.DB) error
	Fallback func(tx *gorm.DB) error
}

// Version groups the steps that move a store from Number-1 to Number.
type Version struct {
	Number int
	Steps  []Step
}

// History is the ordered list of versions, starting at 1.
func History() []Version {
	return []Version{
		{Number: 1, Steps: []Step{
			{Name: "create base tables", Up: func(tx *gorm.DB) error {
				return execAll(tx, customersDDL(TableCustomers), productsV1DDL, customerEventsV1DDL, dailyEventsV1DDL)
			}},
		}},
		{Number: 2, Steps: []Step{
			{Name: "add products tax rate", Table: TableProducts, Up: func(tx *gorm.DB) error {
				return addColumn(tx, TableProducts, "Tax_Rate", "REAL NOT NULL DEFAULT 0")
			}},
		}},
		{Number: 3, Steps: []Step{
			{Name: "add customer event status", Table: TableCustomerEvents, Up: func(tx *gorm.DB) error {
				return addColumn(tx, TableCustomerEvents, "Status", "TEXT NOT NULL DEFAULT 'active'")
			}},
			{Name: "link daily events to customer events", Table: TableDailyEvents, Up: func(tx *gorm.DB) error {
				return addColumn(tx, TableDailyEvents, "customer_event_no",
					"TEXT REFERENCES customer_events(Event_No) ON DELETE SET NULL")
			}},
		}},
		{Number: 4, Steps: []Step{
			{Name: "create payments", Table: TablePayments, Up: func(tx *gorm.DB) error {
				return tx.Exec(paymentsV4DDL).Error
			}},
		}},
		{Number: 5, Steps: []Step{
			{
				Name:  "create expense types",
				Table: TableExpenseTypes,
				Up: func(tx *gorm.DB) error {
					if err := tx.Exec(expenseTypesDDL(TableExpenseTypes)).Error; err != nil {
						return err
					}
					return seedExpenseTypes(tx)
				},
				Fallback: func(tx *gorm.DB) error {
					if err := recreate(tx, TableExpenseTypes, expenseTypesDDL); err != nil {
						return err
					}
					return seedExpenseTypes(tx)
				},
			},
		}},
		{Number: 6, Steps: []Step{
			{
				Name:  "create payment modes",
				Table: TablePaymentModes,
				Up: func(tx *gorm.DB) error {
					if err := tx.Exec(paymentModesDDL(TablePaymentModes)).Error; err != nil {
						return err
					}
					return seedPaymentModes(tx)
				},
				Fallback: func(tx *gorm.DB) error {
					if err := recreate(tx, TablePaymentModes, paymentModesDDL); err != nil {
						return err
					}
					return seedPaymentModes(tx)
				},
			},
		}},
		{Number: 7, Steps: []Step{
			{Name: "add customer event quantity", Table: TableCustomerEvents, Up: addQuantity},
		}},
		{Number: 8, Steps: []Step{
			{Name: "add expected finishing date", Table: TableCustomerEvents, Up: func(tx *gorm.DB) error {
				return addColumn(tx, TableCustomerEvents, "Expected_Finishing_Date", "TEXT")
			}},
			{Name: "make daily event product optional", Table: TableDailyEvents, Up: relaxDailyEventProduct},
		}},
		{Number: 9, Steps: []Step{
			{
				Name:     "reshape payments",
				Table:    TablePayments,
				Up:       reshapePayments,
				Fallback: func(tx *gorm.DB) error { return recreate(tx, TablePayments, paymentsDDL) },
			},
		}},
	}
}

// addQuantity rebuilds customer_events because SQLite cannot add a NOT NULL
// column to a populated table without a rebuild that sets every row.
func addQuantity(tx *gorm.DB) error {
	cols, err := columns(tx, TableCustomerEvents)
	if err != nil {
		return err
	}
	if _, ok := cols["quantity"]; ok {
		return nil
	}
	return rebuild(tx, TableCustomerEvents, customerEventsV7DDL,
		"Event_No, Event_Name, Customer_ID, Product_ID, Customer_Name, Quantity, Amount, Event_Date, Status",
		"Event_No, Event_Name, Customer_ID, Product_ID, Customer_Name, 1.0, Amount, Event_Date, "+
			pick(cols, "Status", "'active'"),
	)
}

func relaxDailyEventProduct(tx *gorm.DB) error {
	cols, err := columns(tx, TableDailyEvents)
	if err != nil {
		return err
	}
	if c, ok := cols["product_id"]; ok && !c.NotNull {
		return nil
	}
	return rebuild(tx, TableDailyEvents, dailyEventsDDL,
		"Event_ID, Event_Name, Customer_ID, Product_ID, Customer_Name, Expense_Type, Description, Amount, Event_Date, customer_event_no",
		"Event_ID, Event_Name, Customer_ID, NULLIF(Product_ID, ''), Customer_Name, Expense_Type, Description, Amount, Event_Date, "+
			pick(cols, "customer_event_no", "NULL"),
	)
}

func reshapePayments(tx *gorm.DB) error {
	exists, err := tableExists(tx, TablePayments)
	if err != nil {
		return err
	}
	if !exists {
		return tx.Exec(paymentsDDL(TablePayments)).Error
	}
	cols, err := columns(tx, TablePayments)
	if err != nil {
		return err
	}
	if _, ok := cols["paying_person_name"]; ok {
		return nil
	}
	return rebuild(tx, TablePayments, paymentsDDL,
		"id, customer_event_no, paying_person_name, payment_type, amount, status, reference_number, notes, payment_date, created_at, updated_at",
		"id, customer_event_no, 'Unknown', 'cash', amount, COALESCE("+pick(cols, "status", "NULL")+", 'pending'), NULL, "+
			pick(cols, "notes", "NULL")+", payment_date, "+pick(cols, "created_at", "NULL")+", "+pick(cols, "created_at", "NULL"),
	)
}

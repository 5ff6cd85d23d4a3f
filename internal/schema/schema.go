package schema

import "fmt"

// Table names shared with the repositories and the backup package.
const (
	TableCustomers      = "customers"
	TableProducts       = "products"
	TableCustomerEvents = "customer_events"
	TableDailyEvents    = "daily_events"
	TableExpenseTypes   = "expense_types"
	TablePaymentModes   = "payment_modes"
	TablePayments       = "payments"
)

// Tables lists every table of the current schema, parents before children.
var Tables = []string{
	TableCustomers,
	TableProducts,
	TableCustomerEvents,
	TableDailyEvents,
	TableExpenseTypes,
	TablePaymentModes,
	TablePayments,
}

func customersDDL(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	Customer_ID TEXT PRIMARY KEY,
	Customer_Name TEXT NOT NULL,
	Location TEXT,
	Contact_Person TEXT,
	Mobile_Number TEXT,
	GST_Number TEXT
)`, name)
}

func productsDDL(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	Product_ID TEXT PRIMARY KEY,
	Product_Name TEXT NOT NULL,
	Tax_Rate REAL NOT NULL DEFAULT 0
)`, name)
}

func customerEventsDDL(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	Event_No TEXT PRIMARY KEY,
	Event_Name TEXT NOT NULL,
	Customer_ID TEXT NOT NULL REFERENCES customers(Customer_ID) ON DELETE CASCADE,
	Product_ID TEXT NOT NULL REFERENCES products(Product_ID) ON DELETE CASCADE,
	Customer_Name TEXT,
	Quantity REAL NOT NULL DEFAULT 1.0,
	Amount REAL NOT NULL DEFAULT 0,
	Event_Date TEXT NOT NULL,
	Expected_Finishing_Date TEXT,
	Status TEXT NOT NULL DEFAULT 'active'
)`, name)
}

func dailyEventsDDL(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	Event_ID TEXT PRIMARY KEY,
	Event_Name TEXT,
	Customer_ID TEXT NOT NULL REFERENCES customers(Customer_ID) ON DELETE CASCADE,
	Product_ID TEXT REFERENCES products(Product_ID) ON DELETE CASCADE,
	Customer_Name TEXT,
	Expense_Type TEXT,
	Description TEXT,
	Amount REAL NOT NULL,
	Event_Date TEXT NOT NULL,
	customer_event_no TEXT REFERENCES customer_events(Event_No) ON DELETE SET NULL
)`, name)
}

func expenseTypesDDL(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	category TEXT NOT NULL DEFAULT 'general',
	description TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT,
	updated_at TEXT
)`, name)
}

func paymentModesDDL(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	type TEXT NOT NULL DEFAULT 'other',
	description TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT,
	updated_at TEXT
)`, name)
}

func paymentsDDL(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	customer_event_no TEXT NOT NULL REFERENCES customer_events(Event_No) ON DELETE CASCADE,
	paying_person_name TEXT NOT NULL,
	payment_type TEXT NOT NULL,
	amount REAL NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	reference_number TEXT,
	notes TEXT,
	payment_date TEXT NOT NULL,
	created_at TEXT,
	updated_at TEXT
)`, name)
}

// currentDDL is the full schema a fresh store is created with.
func currentDDL() []string {
	return []string{
		customersDDL(TableCustomers),
		productsDDL(TableProducts),
		customerEventsDDL(TableCustomerEvents),
		dailyEventsDDL(TableDailyEvents),
		expenseTypesDDL(TableExpenseTypes),
		paymentModesDDL(TablePaymentModes),
		paymentsDDL(TablePayments),
		`CREATE INDEX IF NOT EXISTS idx_customer_events_customer ON customer_events(Customer_ID)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_events_event ON daily_events(customer_event_no)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_event ON payments(customer_event_no)`,
	}
}

// Shapes older stores were created with.
const (
	productsV1DDL = `CREATE TABLE IF NOT EXISTS products (
	Product_ID TEXT PRIMARY KEY,
	Product_Name TEXT NOT NULL
)`

	customerEventsV1DDL = `CREATE TABLE IF NOT EXISTS customer_events (
	Event_No TEXT PRIMARY KEY,
	Event_Name TEXT NOT NULL,
	Customer_ID TEXT NOT NULL REFERENCES customers(Customer_ID) ON DELETE CASCADE,
	Product_ID TEXT NOT NULL REFERENCES products(Product_ID) ON DELETE CASCADE,
	Customer_Name TEXT,
	Amount REAL NOT NULL DEFAULT 0,
	Event_Date TEXT NOT NULL
)`

	dailyEventsV1DDL = `CREATE TABLE IF NOT EXISTS daily_events (
	Event_ID TEXT PRIMARY KEY,
	Event_Name TEXT,
	Customer_ID TEXT NOT NULL REFERENCES customers(Customer_ID) ON DELETE CASCADE,
	Product_ID TEXT NOT NULL REFERENCES products(Product_ID) ON DELETE CASCADE,
	Customer_Name TEXT,
	Expense_Type TEXT,
	Description TEXT,
	Amount REAL NOT NULL,
	Event_Date TEXT NOT NULL
)`

	paymentsV4DDL = `CREATE TABLE IF NOT EXISTS payments (
	id TEXT PRIMARY KEY,
	customer_event_no TEXT NOT NULL REFERENCES customer_events(Event_No) ON DELETE CASCADE,
	amount REAL NOT NULL,
	payment_date TEXT NOT NULL,
	status TEXT DEFAULT 'pending',
	notes TEXT,
	created_at TEXT
)`
)

// customerEventsV7DDL is customer_events once Quantity exists but before the
// expected finishing date was added.
func customerEventsV7DDL(name string) string {
	return fmt.Sprintf(`CREATE TABLE %s (
	Event_No TEXT PRIMARY KEY,
	Event_Name TEXT NOT NULL,
	Customer_ID TEXT NOT NULL REFERENCES customers(Customer_ID) ON DELETE CASCADE,
	Product_ID TEXT NOT NULL REFERENCES products(Product_ID) ON DELETE CASCADE,
	Customer_Name TEXT,
	Quantity REAL NOT NULL DEFAULT 1.0,
	Amount REAL NOT NULL DEFAULT 0,
	Event_Date TEXT NOT NULL,
	Status TEXT NOT NULL DEFAULT 'active'
)`, name)
}

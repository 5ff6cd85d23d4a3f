package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(store.Config{Path: store.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func count(t *testing.T, db *store.DB, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Gorm().Raw(query, args...).Scan(&n).Error)
	return n
}

func exec(t *testing.T, db *store.DB, query string, args ...any) {
	t.Helper()
	require.NoError(t, db.Gorm().Exec(query, args...).Error)
}

func TestMigrate_FreshStore(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	m := NewMigrator(db)

	v, err := m.Migrate(ctx, CurrentVersion)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, v)

	stored, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, stored)

	for _, table := range Tables {
		ok, err := tableExists(db.Gorm(), table)
		require.NoError(t, err)
		assert.True(t, ok, table)
	}

	assert.Equal(t, int64(len(defaultExpenseTypes)), count(t, db, "SELECT count(*) FROM expense_types"))
	assert.Equal(t, int64(len(defaultPaymentModes)), count(t, db, "SELECT count(*) FROM payment_modes"))
	assert.Equal(t, int64(1), count(t, db, "SELECT count(*) FROM payment_modes WHERE id = 'PM0001' AND type = 'cash'"))

	t.Run("second open is a no-op", func(t *testing.T) {
		v, err := m.Migrate(ctx, CurrentVersion)
		require.NoError(t, err)
		assert.Equal(t, CurrentVersion, v)
		assert.Equal(t, int64(len(defaultExpenseTypes)), count(t, db, "SELECT count(*) FROM expense_types"))
	})
}

func TestMigrate_LegacyStore(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	m := NewMigrator(db)

	v, err := m.Migrate(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, 4, v)

	ok, err := hasColumn(db.Gorm(), TableCustomerEvents, "Quantity")
	require.NoError(t, err)
	require.False(t, ok)

	// v1 stores wrote empty product ids on expense lines.
	exec(t, db, "PRAGMA foreign_keys = OFF")
	exec(t, db, `INSERT INTO customers (Customer_ID, Customer_Name) VALUES ('CUST0001', 'Ravi')`)
	exec(t, db, `INSERT INTO products (Product_ID, Product_Name, Tax_Rate) VALUES ('PROD0001', 'Stage', 18)`)
	exec(t, db, `INSERT INTO customer_events (Event_No, Event_Name, Customer_ID, Product_ID, Customer_Name, Amount, Event_Date, Status)
		VALUES ('CE0001', 'Wedding', 'CUST0001', 'PROD0001', 'Ravi', 5000, '2023-11-02', 'active')`)
	exec(t, db, `INSERT INTO daily_events (Event_ID, Event_Name, Customer_ID, Product_ID, Customer_Name, Amount, Event_Date, customer_event_no)
		VALUES ('EVT0001', 'Flowers', 'CUST0001', '', 'Ravi', 800, '2023-11-01', 'CE0001')`)
	exec(t, db, `INSERT INTO payments (id, customer_event_no, amount, payment_date, status, notes, created_at)
		VALUES ('PAY000001', 'CE0001', 2000, '2023-11-03', 'partial', 'advance', '2023-11-03T10:00:00Z')`)
	exec(t, db, "PRAGMA foreign_keys = ON")

	v, err = m.Migrate(ctx, CurrentVersion)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, v)

	var qty float64
	require.NoError(t, db.Gorm().Raw("SELECT Quantity FROM customer_events WHERE Event_No = 'CE0001'").Scan(&qty).Error)
	assert.Equal(t, 1.0, qty)
	assert.Equal(t, int64(1), count(t, db, "SELECT count(*) FROM customer_events WHERE Expected_Finishing_Date IS NULL AND Status = 'active'"))

	assert.Equal(t, int64(1), count(t, db, "SELECT count(*) FROM daily_events WHERE Product_ID IS NULL AND customer_event_no = 'CE0001'"))

	assert.Equal(t, int64(1), count(t, db, `SELECT count(*) FROM payments
		WHERE id = 'PAY000001' AND paying_person_name = 'Unknown' AND payment_type = 'cash'
		AND reference_number IS NULL AND updated_at = created_at AND amount = 2000 AND status = 'partial' AND notes = 'advance'`))

	assert.Equal(t, int64(len(defaultExpenseTypes)), count(t, db, "SELECT count(*) FROM expense_types"))

	t.Run("foreign keys survive rebuilds", func(t *testing.T) {
		exec(t, db, "DELETE FROM customer_events WHERE Event_No = 'CE0001'")
		assert.Equal(t, int64(0), count(t, db, "SELECT count(*) FROM payments"))
		assert.Equal(t, int64(1), count(t, db, "SELECT count(*) FROM daily_events WHERE customer_event_no IS NULL"))
	})

	t.Run("no leftover temporary tables", func(t *testing.T) {
		assert.Equal(t, int64(0), count(t, db, "SELECT count(*) FROM sqlite_master WHERE name LIKE '%_new'"))
	})
}

func TestMigrate_UnversionedStore(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	exec(t, db, customersDDL(TableCustomers))
	exec(t, db, productsV1DDL)
	exec(t, db, customerEventsV1DDL)
	exec(t, db, dailyEventsV1DDL)

	v, err := NewMigrator(db).Migrate(ctx, CurrentVersion)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, v)

	ok, err := hasColumn(db.Gorm(), TableProducts, "Tax_Rate")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMigrate_NewerStore(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	exec(t, db, "PRAGMA user_version = 42")

	_, err := NewMigrator(db).Migrate(ctx, CurrentVersion)
	assert.ErrorIs(t, err, ErrNewerStore)
}

func TestMigrate_FailedStepIsTolerated(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	boom := errors.New("boom")
	var fallbackRan bool
	history := []Version{
		{Number: 1, Steps: []Step{
			{Name: "base", Up: func(tx *gorm.DB) error {
				return tx.Exec("CREATE TABLE a (id TEXT PRIMARY KEY)").Error
			}},
		}},
		{Number: 2, Steps: []Step{
			{Name: "half done then fails", Table: "b", Up: func(tx *gorm.DB) error {
				if err := tx.Exec("CREATE TABLE b (id TEXT)").Error; err != nil {
					return err
				}
				return boom
			}, Fallback: func(tx *gorm.DB) error {
				fallbackRan = true
				return tx.Exec("CREATE TABLE b (id TEXT PRIMARY KEY, clean INTEGER)").Error
			}},
			{Name: "fails without fallback", Up: func(tx *gorm.DB) error { return boom }},
			{Name: "still applied", Up: func(tx *gorm.DB) error {
				return tx.Exec("ALTER TABLE a ADD COLUMN note TEXT").Error
			}},
		}},
	}
	m := NewMigrator(db, WithHistory(history))

	v, err := m.Migrate(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	v, err = m.Migrate(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.True(t, fallbackRan)

	ok, err := hasColumn(db.Gorm(), "b", "clean")
	require.NoError(t, err)
	assert.True(t, ok, "fallback should rebuild b after the failed step rolled back")

	ok, err = hasColumn(db.Gorm(), "a", "note")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMigrate_UnknownTarget(t *testing.T) {
	_, err := NewMigrator(openMemory(t)).Migrate(context.Background(), CurrentVersion+1)
	assert.Error(t, err)
}

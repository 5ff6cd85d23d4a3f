package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/internal/repository"
	"github.com/Fcatilizer/bookkeep-sub001/internal/schema"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(store.Config{Path: store.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, schema.Open(context.Background(), db, schema.CurrentVersion))
	return db
}

func seed(t *testing.T, db *store.DB) {
	t.Helper()
	ctx := context.Background()
	mustCreate := func(ok bool, err error) {
		require.NoError(t, err)
		require.True(t, ok)
	}
	mustCreate(repository.NewCustomerRepository(db).Create(ctx, &model.Customer{
		ID: "CUST0001", Name: "Ravi", Location: model.Ptr("Pune"),
	}))
	mustCreate(repository.NewProductRepository(db).Create(ctx, &model.Product{ID: "PROD0001", Name: "Stage", TaxRate: 18}))
	mustCreate(repository.NewCustomerEventRepository(db).Create(ctx, &model.CustomerEvent{
		EventNo: "CE0001", Name: "Stage build", CustomerID: "CUST0001", ProductID: "PROD0001",
		CustomerName: "Ravi", Quantity: 2, AgreedAmount: 1180, EventDate: model.NewDate(2024, 4, 1),
		Status: model.EventStatusActive,
	}))
	mustCreate(repository.NewDailyEventRepository(db).Create(ctx, &model.DailyEvent{
		EventID: "EVT0001", Name: "Timber", CustomerID: "CUST0001", CustomerName: "Ravi",
		ExpenseType: "Materials", Amount: 300, Date: model.NewDate(2024, 4, 2), CustomerEventNo: model.Ptr("CE0001"),
	}))
	mustCreate(repository.NewPaymentRepository(db).Create(ctx, &model.Payment{
		ID: "PAY000001", CustomerEventNo: "CE0001", PayingPersonName: "Ravi", PaymentType: "cash",
		Amount: 500, Status: model.PaymentStatusPartial, PaymentDate: model.NewDate(2024, 4, 3),
	}))
}

func TestExportRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	seed(t, src)

	doc, err := New(src).Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, doc.Version)
	assert.Equal(t, schema.CurrentVersion, doc.SchemaVersion)
	assert.Equal(t, map[string]int{
		schema.TableCustomers: 1, schema.TableProducts: 1, schema.TableCustomerEvents: 1,
		schema.TableDailyEvents: 1, schema.TablePayments: 1,
	}, doc.Count())
	assert.Equal(t, "Ravi", doc.Tables[schema.TableCustomers][0]["Customer_Name"])

	path := filepath.Join(t.TempDir(), "nested", FileName(time.Now()))
	require.NoError(t, WriteFile(path, doc))
	loaded, err := ReadFile(path)
	require.NoError(t, err)

	dst := setupTestDB(t)
	require.NoError(t, New(dst).Restore(ctx, loaded))

	event, err := repository.NewCustomerEventRepository(dst).GetByID(ctx, "CE0001")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, 2.0, event.Quantity)
	assert.Equal(t, "2024-04-01", event.EventDate.String())

	expense, err := repository.NewDailyEventRepository(dst).GetByID(ctx, "EVT0001")
	require.NoError(t, err)
	require.NotNil(t, expense)
	assert.Equal(t, "CE0001", *expense.CustomerEventNo)

	payments, err := repository.NewPaymentRepository(dst).ListByCustomerEvent(ctx, "CE0001")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestRestore_RollsBackOnBadRecord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seed(t, db)

	doc := &Document{Version: FormatVersion, Tables: map[string][]Record{
		schema.TableCustomers: {{"Customer_ID": "CUST0009", "Customer_Name": "Asha"}},
		schema.TableCustomerEvents: {{
			"Event_No": "CE0009", "Event_Name": "x", "Customer_ID": "CUST0404", "Product_ID": "PROD0404",
			"Customer_Name": "x", "Quantity": 1.0, "Amount": 10.0, "Event_Date": "2024-01-01",
		}},
	}}
	require.Error(t, New(db).Restore(ctx, doc))

	c, err := repository.NewCustomerRepository(db).GetByID(ctx, "CUST0001")
	require.NoError(t, err)
	assert.NotNil(t, c, "original data must survive a failed restore")
	c, err = repository.NewCustomerRepository(db).GetByID(ctx, "CUST0009")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestRestore_WithoutPayments(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seed(t, db)

	doc, err := New(db).Export(ctx)
	require.NoError(t, err)
	delete(doc.Tables, schema.TablePayments)
	require.NoError(t, New(db).Restore(ctx, doc))

	payments, err := repository.NewPaymentRepository(db).GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestWipe(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seed(t, db)

	require.NoError(t, New(db).Wipe(ctx))

	for _, table := range wipeOrder {
		var n int64
		require.NoError(t, db.Gorm().Table(table).Count(&n).Error)
		assert.Zero(t, n, table)
	}
	var lookups int64
	require.NoError(t, db.Gorm().Table(schema.TableExpenseTypes).Count(&lookups).Error)
	assert.Positive(t, lookups)
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	txt := filepath.Join(dir, "backup.txt")
	require.NoError(t, os.WriteFile(txt, []byte(`{"tables":{}}`), 0o600))
	_, err = ReadFile(txt)
	assert.ErrorIs(t, err, ErrInvalidExtension)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"tables":`), 0o600))
	_, err = ReadFile(bad)
	assert.ErrorIs(t, err, ErrMalformedBackup)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"version":"1.0"}`), 0o600))
	_, err = ReadFile(empty)
	assert.ErrorIs(t, err, ErrMissingTables)

	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "out.csv"), &Document{}), ErrInvalidExtension)
}

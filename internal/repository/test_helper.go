package repository

import (
	"context"
	"testing"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/internal/schema"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"github.com/stretchr/testify/require"
)

// setupTestDB opens a private in-memory store at the current schema version.
func setupTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(store.Config{Path: store.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, schema.Open(context.Background(), db, schema.CurrentVersion))
	return db
}

type fixture struct {
	customers *CustomerRepository
	products  *ProductRepository
	events    *CustomerEventRepository
	expenses  *DailyEventRepository
	payments  *PaymentRepository
}

func newFixture(t *testing.T) (*store.DB, *fixture) {
	db := setupTestDB(t)
	return db, &fixture{
		customers: NewCustomerRepository(db),
		products:  NewProductRepository(db),
		events:    NewCustomerEventRepository(db),
		expenses:  NewDailyEventRepository(db),
		payments:  NewPaymentRepository(db),
	}
}

// seedJob writes a customer, a product and one job linking them.
func (f *fixture) seedJob(t *testing.T, customerID, productID, eventNo string, agreed float64) {
	t.Helper()
	ctx := context.Background()

	ok, err := f.customers.Create(ctx, &model.Customer{ID: customerID, Name: "Customer " + customerID})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = f.products.Create(ctx, &model.Product{ID: productID, Name: "Product " + productID, TaxRate: 18})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = f.events.Create(ctx, &model.CustomerEvent{
		EventNo:      eventNo,
		Name:         "Job " + eventNo,
		CustomerID:   customerID,
		ProductID:    productID,
		CustomerName: "Customer " + customerID,
		Quantity:     1,
		AgreedAmount: agreed,
		EventDate:    model.NewDate(2024, 1, 15),
		Status:       model.EventStatusActive,
	})
	require.NoError(t, err)
	require.True(t, ok)
}

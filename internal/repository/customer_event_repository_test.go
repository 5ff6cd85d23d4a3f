package repository

import (
	"context"
	"testing"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerEventRepository(t *testing.T) {
	_, f := newFixture(t)
	repo := f.events
	ctx := context.Background()
	f.seedJob(t, "CUST0001", "PROD0001", "CE0001", 1000)

	t.Run("unknown customer is a constraint violation", func(t *testing.T) {
		ok, err := repo.Create(ctx, &model.CustomerEvent{
			EventNo: "CE0002", Name: "x", CustomerID: "CUST0404", ProductID: "PROD0001",
			Quantity: 1, EventDate: model.NewDate(2024, 2, 1), Status: model.EventStatusActive,
		})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("round trip keeps dates and status", func(t *testing.T) {
		finish := model.NewDate(2024, 3, 1)
		ok, err := repo.Create(ctx, &model.CustomerEvent{
			EventNo: "CE0002", Name: "Fit-out", CustomerID: "CUST0001", ProductID: "PROD0001",
			CustomerName: "Customer CUST0001", Quantity: 2.5, AgreedAmount: 4200,
			EventDate: model.NewDate(2024, 2, 1), ExpectedFinishDate: &finish,
		})
		require.NoError(t, err)
		require.True(t, ok)

		got, err := repo.GetByID(ctx, "CE0002")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 2.5, got.Quantity)
		assert.Equal(t, 4200.0, got.AgreedAmount)
		assert.Equal(t, "2024-02-01", got.EventDate.String())
		require.NotNil(t, got.ExpectedFinishDate)
		assert.Equal(t, "2024-03-01", got.ExpectedFinishDate.String())
		assert.Equal(t, model.EventStatusActive, got.Status)
	})

	t.Run("newest first", func(t *testing.T) {
		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "CE0002", all[0].EventNo)
	})

	t.Run("filters", func(t *testing.T) {
		byCustomer, err := repo.ListByCustomer(ctx, "CUST0001")
		require.NoError(t, err)
		assert.Len(t, byCustomer, 2)

		found, err := repo.Search(ctx, "fit")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "CE0002", found[0].EventNo)
	})

	t.Run("status update", func(t *testing.T) {
		n, err := repo.UpdateStatus(ctx, "CE0001", model.EventStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		completed, err := repo.ListByStatus(ctx, model.EventStatusCompleted)
		require.NoError(t, err)
		require.Len(t, completed, 1)
		assert.Equal(t, "CE0001", completed[0].EventNo)
	})

	t.Run("clear expected finishing date", func(t *testing.T) {
		n, err := repo.Update(ctx, "CE0002", model.CustomerEventPatch{ClearExpectedFinishDate: true, Quantity: model.Ptr(3.0)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := repo.GetByID(ctx, "CE0002")
		require.NoError(t, err)
		assert.Nil(t, got.ExpectedFinishDate)
		assert.Equal(t, 3.0, got.Quantity)
	})

	t.Run("update to unknown product is rejected", func(t *testing.T) {
		_, err := repo.Update(ctx, "CE0002", model.CustomerEventPatch{ProductID: model.Ptr("PROD0404")})
		assert.ErrorIs(t, err, ErrConstraintViolation)
	})

	t.Run("generate id", func(t *testing.T) {
		id, err := repo.GenerateID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "CE0003", id)
	})
}

func TestCustomerEventRepository_DeleteKeepsExpenses(t *testing.T) {
	_, f := newFixture(t)
	ctx := context.Background()
	f.seedJob(t, "CUST0001", "PROD0001", "CE0001", 1000)

	ok, err := f.expenses.Create(ctx, &model.DailyEvent{
		EventID: "EVT0001", CustomerID: "CUST0001", Amount: 300,
		Date: model.NewDate(2024, 1, 16), CustomerEventNo: model.Ptr("CE0001"),
	})
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = f.payments.Create(ctx, &model.Payment{
		ID: "PAY000001", CustomerEventNo: "CE0001", PayingPersonName: "A", PaymentType: "cash",
		Amount: 500, Status: model.PaymentStatusPartial, PaymentDate: model.NewDate(2024, 1, 20),
	})
	require.NoError(t, err)
	require.True(t, ok)

	n, err := f.events.Delete(ctx, "CE0001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	expense, err := f.expenses.GetByID(ctx, "EVT0001")
	require.NoError(t, err)
	require.NotNil(t, expense)
	assert.Nil(t, expense.CustomerEventNo)

	payments, err := f.payments.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

package repository

import (
	"context"
	"testing"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseTypeRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExpenseTypeRepository(db)
	ctx := context.Background()

	seeded, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, seeded)

	id, err := repo.GenerateID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ET0007", id)

	t.Run("case-insensitive names", func(t *testing.T) {
		ok, err := repo.Create(ctx, &model.ExpenseType{ID: id, Name: "MATERIALS", IsActive: true})
		require.NoError(t, err)
		assert.False(t, ok)

		exists, err := repo.NameExists(ctx, "materials", "")
		require.NoError(t, err)
		assert.True(t, exists)

		materials := seeded[0]
		for _, s := range seeded {
			if s.Name == "Materials" {
				materials = s
			}
		}
		exists, err = repo.NameExists(ctx, "materials", materials.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("create stamps times and defaults category", func(t *testing.T) {
		et := &model.ExpenseType{ID: id, Name: "Rent", IsActive: true}
		ok, err := repo.Create(ctx, et)
		require.NoError(t, err)
		require.True(t, ok)

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultExpenseCategory, got.Category)
		assert.False(t, got.CreatedAt.IsZero())
		assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	})

	t.Run("deactivate", func(t *testing.T) {
		active, err := repo.ListActive(ctx)
		require.NoError(t, err)

		n, err := repo.SetActive(ctx, id, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		after, err := repo.ListActive(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(active)-1)
	})
}

func TestPaymentModeRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentModeRepository(db)
	ctx := context.Background()

	modes, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, modes)

	id, err := repo.GenerateID(ctx)
	require.NoError(t, err)

	ok, err := repo.Create(ctx, &model.PaymentMode{ID: id, Name: "Wallet", IsActive: true})
	require.NoError(t, err)
	require.True(t, ok)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentModeOther, got.Type)

	kind := model.PaymentModeUPI
	n, err := repo.Update(ctx, id, model.PaymentModePatch{Type: &kind})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Update(ctx, id, model.PaymentModePatch{Name: model.Ptr("cash")})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	n, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

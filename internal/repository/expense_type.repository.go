package repository

import (
	"context"
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
)

type ExpenseTypeRepository struct {
	*store.DB
	now func() time.Time
}

func NewExpenseTypeRepository(db *store.DB) *ExpenseTypeRepository {
	return &ExpenseTypeRepository{
		DB:  db,
		now: time.Now,
	}
}

// Create stamps created_at and updated_at. A name that differs from an
// existing one only by case is rejected by the store.
func (r *ExpenseTypeRepository) Create(ctx context.Context, t *model.ExpenseType) (bool, error) {
	now := r.now().UTC().Truncate(time.Second)
	t.CreatedAt, t.UpdatedAt = now, now
	return createResult(r.Write(ctx).WithContext(ctx).Create(toExpenseTypeEntity(t)).Error)
}

func (r *ExpenseTypeRepository) GetAll(ctx context.Context) ([]*model.ExpenseType, error) {
	var entities []*ExpenseTypeEntity
	if err := r.Read(ctx).WithContext(ctx).Order("name").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toExpenseTypeModels(entities), nil
}

func (r *ExpenseTypeRepository) ListActive(ctx context.Context) ([]*model.ExpenseType, error) {
	var entities []*ExpenseTypeEntity
	if err := r.Read(ctx).WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toExpenseTypeModels(entities), nil
}

func (r *ExpenseTypeRepository) GetByID(ctx context.Context, id string) (*model.ExpenseType, error) {
	e, err := first[ExpenseTypeEntity](r.Read(ctx).WithContext(ctx), "id = ?", id)
	if err != nil {
		return nil, err
	}
	return toExpenseTypeModel(e), nil
}

// NameExists compares case-insensitively and ignores the row excludeID, so
// a rename to the same name in another case is allowed.
func (r *ExpenseTypeRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var n int64
	err := r.Read(ctx).WithContext(ctx).Model(&ExpenseTypeEntity{}).
		Where("name = ? COLLATE NOCASE AND id <> ?", name, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *ExpenseTypeRepository) Update(ctx context.Context, id string, p model.ExpenseTypePatch) (int64, error) {
	values := map[string]any{}
	setText(values, "name", p.Name)
	setText(values, "category", p.Category)
	setOptionalText(values, "description", p.Description)
	if p.IsActive != nil {
		values["is_active"] = *p.IsActive
	}
	if len(values) == 0 {
		return 0, nil
	}
	values["updated_at"] = timestamp(r.now())
	return updateResult(r.Write(ctx).WithContext(ctx).
		Model(&ExpenseTypeEntity{}).
		Where("id = ?", id).
		Updates(values))
}

func (r *ExpenseTypeRepository) SetActive(ctx context.Context, id string, active bool) (int64, error) {
	return r.Update(ctx, id, model.ExpenseTypePatch{IsActive: &active})
}

func (r *ExpenseTypeRepository) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.Write(ctx).WithContext(ctx).Where("id = ?", id).Delete(&ExpenseTypeEntity{})
	return updateResult(tx)
}

func (r *ExpenseTypeRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.Read(ctx).WithContext(ctx).Model(&ExpenseTypeEntity{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *ExpenseTypeRepository) GenerateID(ctx context.Context) (string, error) {
	return expenseTypeIDs.next(ctx, r.Read(ctx))
}

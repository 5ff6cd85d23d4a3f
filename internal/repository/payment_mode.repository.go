package repository

import (
	"context"
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
)

type PaymentModeRepository struct {
	*store.DB
	now func() time.Time
}

func NewPaymentModeRepository(db *store.DB) *PaymentModeRepository {
	return &PaymentModeRepository{
		DB:  db,
		now: time.Now,
	}
}

func (r *PaymentModeRepository) Create(ctx context.Context, m *model.PaymentMode) (bool, error) {
	now := r.now().UTC().Truncate(time.Second)
	m.CreatedAt, m.UpdatedAt = now, now
	return createResult(r.Write(ctx).WithContext(ctx).Create(toPaymentModeEntity(m)).Error)
}

func (r *PaymentModeRepository) GetAll(ctx context.Context) ([]*model.PaymentMode, error) {
	var entities []*PaymentModeEntity
	if err := r.Read(ctx).WithContext(ctx).Order("name").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toPaymentModeModels(entities), nil
}

func (r *PaymentModeRepository) ListActive(ctx context.Context) ([]*model.PaymentMode, error) {
	var entities []*PaymentModeEntity
	if err := r.Read(ctx).WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toPaymentModeModels(entities), nil
}

func (r *PaymentModeRepository) GetByID(ctx context.Context, id string) (*model.PaymentMode, error) {
	e, err := first[PaymentModeEntity](r.Read(ctx).WithContext(ctx), "id = ?", id)
	if err != nil {
		return nil, err
	}
	return toPaymentModeModel(e), nil
}

// NameExists is case-insensitive; pass the mode's own id as excludeID when
// renaming it.
func (r *PaymentModeRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var n int64
	err := r.Read(ctx).WithContext(ctx).Model(&PaymentModeEntity{}).
		Where("name = ? COLLATE NOCASE AND id <> ?", name, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *PaymentModeRepository) Update(ctx context.Context, id string, p model.PaymentModePatch) (int64, error) {
	values := map[string]any{}
	setText(values, "name", p.Name)
	if p.Type != nil {
		values["type"] = string(*p.Type)
	}
	setOptionalText(values, "description", p.Description)
	if p.IsActive != nil {
		values["is_active"] = *p.IsActive
	}
	if len(values) == 0 {
		return 0, nil
	}
	values["updated_at"] = timestamp(r.now())
	return updateResult(r.Write(ctx).WithContext(ctx).
		Model(&PaymentModeEntity{}).
		Where("id = ?", id).
		Updates(values))
}

func (r *PaymentModeRepository) SetActive(ctx context.Context, id string, active bool) (int64, error) {
	return r.Update(ctx, id, model.PaymentModePatch{IsActive: &active})
}

func (r *PaymentModeRepository) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.Write(ctx).WithContext(ctx).Where("id = ?", id).Delete(&PaymentModeEntity{})
	return updateResult(tx)
}

func (r *PaymentModeRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.Read(ctx).WithContext(ctx).Model(&PaymentModeEntity{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *PaymentModeRepository) GenerateID(ctx context.Context) (string, error) {
	return paymentModeIDs.next(ctx, r.Read(ctx))
}

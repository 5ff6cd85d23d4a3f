package repository

import (
	"context"
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	*store.DB
	now func() time.Time
}

func NewPaymentRepository(db *store.DB) *PaymentRepository {
	return &PaymentRepository{
		DB:  db,
		now: time.Now,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) (bool, error) {
	now := r.now().UTC().Truncate(time.Second)
	p.CreatedAt, p.UpdatedAt = now, now
	return createResult(r.Write(ctx).WithContext(ctx).Create(toPaymentEntity(p)).Error)
}

func (r *PaymentRepository) list(q *gorm.DB) ([]*model.Payment, error) {
	var entities []*PaymentEntity
	if err := q.Order("payment_date DESC").Order("id DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toPaymentModels(entities), nil
}

func (r *PaymentRepository) GetAll(ctx context.Context) ([]*model.Payment, error) {
	return r.list(r.Read(ctx).WithContext(ctx))
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	e, err := first[PaymentEntity](r.Read(ctx).WithContext(ctx), "id = ?", id)
	if err != nil {
		return nil, err
	}
	return toPaymentModel(e), nil
}

func (r *PaymentRepository) ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.Payment, error) {
	return r.list(r.Read(ctx).WithContext(ctx).Where("customer_event_no = ?", eventNo))
}

func (r *PaymentRepository) Update(ctx context.Context, id string, p model.PaymentPatch) (int64, error) {
	values := map[string]any{}
	setText(values, "paying_person_name", p.PayingPersonName)
	setText(values, "payment_type", p.PaymentType)
	setOptionalText(values, "reference_number", p.ReferenceNumber)
	setOptionalText(values, "notes", p.Notes)
	if p.Amount != nil {
		values["amount"] = *p.Amount
	}
	if p.Status != nil {
		values["status"] = string(*p.Status)
	}
	if p.PaymentDate != nil {
		values["payment_date"] = dateText(*p.PaymentDate)
	}
	if len(values) == 0 {
		return 0, nil
	}
	values["updated_at"] = timestamp(r.now())
	return updateResult(r.Write(ctx).WithContext(ctx).
		Model(&PaymentEntity{}).
		Where("id = ?", id).
		Updates(values))
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.Write(ctx).WithContext(ctx).Where("id = ?", id).Delete(&PaymentEntity{})
	return updateResult(tx)
}

func (r *PaymentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.Read(ctx).WithContext(ctx).Model(&PaymentEntity{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// DeleteOrphans removes payments whose job no longer exists. Such rows can
// only appear in stores written while foreign keys were off.
func (r *PaymentRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	tx := r.Write(ctx).WithContext(ctx).
		Where("customer_event_no NOT IN (SELECT Event_No FROM customer_events)").
		Delete(&PaymentEntity{})
	return tx.RowsAffected, tx.Error
}

func (r *PaymentRepository) GenerateID(ctx context.Context) (string, error) {
	return paymentIDs.next(ctx, r.Read(ctx))
}

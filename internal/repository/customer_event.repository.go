package repository

import (
	"context"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"gorm.io/gorm"
)

type CustomerEventRepository struct {
	*store.DB
}

func NewCustomerEventRepository(db *store.DB) *CustomerEventRepository {
	return &CustomerEventRepository{
		db,
	}
}

func (r *CustomerEventRepository) Create(ctx context.Context, e *model.CustomerEvent) (bool, error) {
	return createResult(r.Write(ctx).WithContext(ctx).Create(toCustomerEventEntity(e)).Error)
}

func (r *CustomerEventRepository) list(q *gorm.DB) ([]*model.CustomerEvent, error) {
	var entities []*CustomerEventEntity
	if err := q.Order("Event_Date DESC").Order("Event_No").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toCustomerEventModels(entities), nil
}

// GetAll returns every job, newest event date first.
func (r *CustomerEventRepository) GetAll(ctx context.Context) ([]*model.CustomerEvent, error) {
	return r.list(r.Read(ctx).WithContext(ctx))
}

func (r *CustomerEventRepository) GetByID(ctx context.Context, eventNo string) (*model.CustomerEvent, error) {
	e, err := first[CustomerEventEntity](r.Read(ctx).WithContext(ctx), "Event_No = ?", eventNo)
	if err != nil {
		return nil, err
	}
	return toCustomerEventModel(e), nil
}

func (r *CustomerEventRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.CustomerEvent, error) {
	return r.list(r.Read(ctx).WithContext(ctx).Where("Customer_ID = ?", customerID))
}

func (r *CustomerEventRepository) ListByStatus(ctx context.Context, status model.EventStatus) ([]*model.CustomerEvent, error) {
	return r.list(r.Read(ctx).WithContext(ctx).Where("Status = ?", string(status)))
}

func (r *CustomerEventRepository) Search(ctx context.Context, name string) ([]*model.CustomerEvent, error) {
	return r.list(r.Read(ctx).WithContext(ctx).Where("Event_Name LIKE ?"+likeEscape, likePattern(name)))
}

func (r *CustomerEventRepository) Update(ctx context.Context, eventNo string, p model.CustomerEventPatch) (int64, error) {
	values := map[string]any{}
	setText(values, "Event_Name", p.Name)
	setText(values, "Product_ID", p.ProductID)
	if p.Quantity != nil {
		values["Quantity"] = *p.Quantity
	}
	if p.AgreedAmount != nil {
		values["Amount"] = *p.AgreedAmount
	}
	if p.EventDate != nil {
		values["Event_Date"] = dateText(*p.EventDate)
	}
	switch {
	case p.ClearExpectedFinishDate:
		values["Expected_Finishing_Date"] = nil
	case p.ExpectedFinishDate != nil:
		values["Expected_Finishing_Date"] = optionalDateText(p.ExpectedFinishDate)
	}
	if len(values) == 0 {
		return 0, nil
	}
	return updateResult(r.Write(ctx).WithContext(ctx).
		Model(&CustomerEventEntity{}).
		Where("Event_No = ?", eventNo).
		Updates(values))
}

// UpdateStatus writes the status unconditionally; payment checks belong to
// the caller.
func (r *CustomerEventRepository) UpdateStatus(ctx context.Context, eventNo string, status model.EventStatus) (int64, error) {
	return updateResult(r.Write(ctx).WithContext(ctx).
		Model(&CustomerEventEntity{}).
		Where("Event_No = ?", eventNo).
		Update("Status", string(status)))
}

// Delete removes the job together with its payments. Linked expense lines
// stay and lose their link.
func (r *CustomerEventRepository) Delete(ctx context.Context, eventNo string) (int64, error) {
	tx := r.Write(ctx).WithContext(ctx).Where("Event_No = ?", eventNo).Delete(&CustomerEventEntity{})
	return updateResult(tx)
}

func (r *CustomerEventRepository) Exists(ctx context.Context, eventNo string) (bool, error) {
	var n int64
	err := r.Read(ctx).WithContext(ctx).Model(&CustomerEventEntity{}).Where("Event_No = ?", eventNo).Count(&n).Error
	return n > 0, err
}

func (r *CustomerEventRepository) GenerateID(ctx context.Context) (string, error) {
	return customerEventIDs.next(ctx, r.Read(ctx))
}

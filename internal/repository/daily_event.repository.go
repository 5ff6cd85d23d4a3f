package repository

import (
	"context"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"gorm.io/gorm"
)

type DailyEventRepository struct {
	*store.DB
}

func NewDailyEventRepository(db *store.DB) *DailyEventRepository {
	return &DailyEventRepository{
		db,
	}
}

func (r *DailyEventRepository) Create(ctx context.Context, e *model.DailyEvent) (bool, error) {
	return createResult(r.Write(ctx).WithContext(ctx).Create(toDailyEventEntity(e)).Error)
}

func (r *DailyEventRepository) list(q *gorm.DB) ([]*model.DailyEvent, error) {
	var entities []*DailyEventEntity
	if err := q.Order("Event_Date DESC").Order("Event_ID").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toDailyEventModels(entities), nil
}

func (r *DailyEventRepository) GetAll(ctx context.Context) ([]*model.DailyEvent, error) {
	return r.list(r.Read(ctx).WithContext(ctx))
}

func (r *DailyEventRepository) GetByID(ctx context.Context, id string) (*model.DailyEvent, error) {
	e, err := first[DailyEventEntity](r.Read(ctx).WithContext(ctx), "Event_ID = ?", id)
	if err != nil {
		return nil, err
	}
	return toDailyEventModel(e), nil
}

func (r *DailyEventRepository) ListByCustomerEvent(ctx context.Context, eventNo string) ([]*model.DailyEvent, error) {
	return r.list(r.Read(ctx).WithContext(ctx).Where("customer_event_no = ?", eventNo))
}

func (r *DailyEventRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.DailyEvent, error) {
	return r.list(r.Read(ctx).WithContext(ctx).Where("Customer_ID = ?", customerID))
}

// ListByDateRange returns expenses dated within [from, to], both inclusive.
func (r *DailyEventRepository) ListByDateRange(ctx context.Context, from, to model.Date) ([]*model.DailyEvent, error) {
	return r.list(r.Read(ctx).WithContext(ctx).
		Where("substr(Event_Date, 1, 10) BETWEEN ? AND ?", dateText(from), dateText(to)))
}

func (r *DailyEventRepository) Search(ctx context.Context, q string) ([]*model.DailyEvent, error) {
	pattern := likePattern(q)
	return r.list(r.Read(ctx).WithContext(ctx).
		Where("Event_Name LIKE ?"+likeEscape+" OR Description LIKE ?"+likeEscape+" OR Expense_Type LIKE ?"+likeEscape,
			pattern, pattern, pattern))
}

// AmountsByCustomerEvent returns the amount of every expense linked to the job.
func (r *DailyEventRepository) AmountsByCustomerEvent(ctx context.Context, eventNo string) ([]float64, error) {
	var amounts []float64
	err := r.Read(ctx).WithContext(ctx).Model(&DailyEventEntity{}).
		Where("customer_event_no = ?", eventNo).
		Pluck("Amount", &amounts).Error
	return amounts, err
}

func (r *DailyEventRepository) SumByCustomerEvent(ctx context.Context, eventNo string) (float64, error) {
	var total float64
	err := r.Read(ctx).WithContext(ctx).Model(&DailyEventEntity{}).
		Select("COALESCE(SUM(Amount), 0)").
		Where("customer_event_no = ?", eventNo).
		Scan(&total).Error
	return total, err
}

func (r *DailyEventRepository) Update(ctx context.Context, id string, p model.DailyEventPatch) (int64, error) {
	values := map[string]any{}
	setOptionalText(values, "Event_Name", p.Name)
	setOptionalText(values, "Product_ID", p.ProductID)
	setOptionalText(values, "Expense_Type", p.ExpenseType)
	setOptionalText(values, "Description", p.Description)
	setOptionalText(values, "customer_event_no", p.CustomerEventNo)
	if p.Amount != nil {
		values["Amount"] = *p.Amount
	}
	if p.Date != nil {
		values["Event_Date"] = dateText(*p.Date)
	}
	if len(values) == 0 {
		return 0, nil
	}
	return updateResult(r.Write(ctx).WithContext(ctx).
		Model(&DailyEventEntity{}).
		Where("Event_ID = ?", id).
		Updates(values))
}

func (r *DailyEventRepository) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.Write(ctx).WithContext(ctx).Where("Event_ID = ?", id).Delete(&DailyEventEntity{})
	return updateResult(tx)
}

func (r *DailyEventRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.Read(ctx).WithContext(ctx).Model(&DailyEventEntity{}).Where("Event_ID = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *DailyEventRepository) GenerateID(ctx context.Context) (string, error) {
	return dailyEventIDs.next(ctx, r.Read(ctx))
}

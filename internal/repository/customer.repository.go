package repository

import (
	"context"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
)

type CustomerRepository struct {
	*store.DB
}

func NewCustomerRepository(db *store.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

// Create inserts the customer. It returns false without an error when the
// row breaks a constraint, for example a duplicate id.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (bool, error) {
	return createResult(r.Write(ctx).WithContext(ctx).Create(toCustomerEntity(c)).Error)
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	if err := r.Read(ctx).WithContext(ctx).Order("Customer_Name").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	e, err := first[CustomerEntity](r.Read(ctx).WithContext(ctx), "Customer_ID = ?", id)
	if err != nil {
		return nil, err
	}
	return toCustomerModel(e), nil
}

func (r *CustomerRepository) Search(ctx context.Context, name string) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("Customer_Name LIKE ?"+likeEscape, likePattern(name)).
		Order("Customer_Name").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

// Update applies the non-nil fields of p and returns the number of rows
// changed. Job and expense rows keep the customer name they were written with.
func (r *CustomerRepository) Update(ctx context.Context, id string, p model.CustomerPatch) (int64, error) {
	values := map[string]any{}
	setText(values, "Customer_Name", p.Name)
	setOptionalText(values, "Location", p.Location)
	setOptionalText(values, "Contact_Person", p.ContactPerson)
	setOptionalText(values, "Mobile_Number", p.Mobile)
	setOptionalText(values, "GST_Number", p.GSTNumber)
	if len(values) == 0 {
		return 0, nil
	}
	return updateResult(r.Write(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("Customer_ID = ?", id).
		Updates(values))
}

// Delete removes the customer; the store cascades to its jobs, expenses and
// their payments.
func (r *CustomerRepository) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.Write(ctx).WithContext(ctx).Where("Customer_ID = ?", id).Delete(&CustomerEntity{})
	return updateResult(tx)
}

func (r *CustomerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.Read(ctx).WithContext(ctx).Model(&CustomerEntity{}).Where("Customer_ID = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *CustomerRepository) GenerateID(ctx context.Context) (string, error) {
	return customerIDs.next(ctx, r.Read(ctx))
}

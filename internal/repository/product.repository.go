package repository

import (
	"context"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
)

type ProductRepository struct {
	*store.DB
}

func NewProductRepository(db *store.DB) *ProductRepository {
	return &ProductRepository{
		db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (bool, error) {
	return createResult(r.Write(ctx).WithContext(ctx).Create(toProductEntity(p)).Error)
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*model.Product, error) {
	var entities []*ProductEntity
	if err := r.Read(ctx).WithContext(ctx).Order("Product_Name").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toProductModels(entities), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	e, err := first[ProductEntity](r.Read(ctx).WithContext(ctx), "Product_ID = ?", id)
	if err != nil {
		return nil, err
	}
	return toProductModel(e), nil
}

func (r *ProductRepository) Search(ctx context.Context, name string) ([]*model.Product, error) {
	var entities []*ProductEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("Product_Name LIKE ?"+likeEscape, likePattern(name)).
		Order("Product_Name").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toProductModels(entities), nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, p model.ProductPatch) (int64, error) {
	values := map[string]any{}
	setText(values, "Product_Name", p.Name)
	if p.TaxRate != nil {
		values["Tax_Rate"] = *p.TaxRate
	}
	if len(values) == 0 {
		return 0, nil
	}
	return updateResult(r.Write(ctx).WithContext(ctx).
		Model(&ProductEntity{}).
		Where("Product_ID = ?", id).
		Updates(values))
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.Write(ctx).WithContext(ctx).Where("Product_ID = ?", id).Delete(&ProductEntity{})
	return updateResult(tx)
}

func (r *ProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.Read(ctx).WithContext(ctx).Model(&ProductEntity{}).Where("Product_ID = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *ProductRepository) GenerateID(ctx context.Context) (string, error) {
	return productIDs.next(ctx, r.Read(ctx))
}

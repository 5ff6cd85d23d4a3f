package services

import (
	"context"

	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type CustomerRepository interface {
	Repository[model.Customer, model.CustomerPatch]
	Search(ctx context.Context, name string) ([]*model.Customer, error)
}

type CustomerService struct {
	*CRUD[model.Customer, model.CustomerPatch, *model.Customer]
	repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{
		CRUD: NewCRUD[model.Customer, model.CustomerPatch]("customer", repo),
		repo: repo,
	}
}

func (s *CustomerService) Search(ctx context.Context, name string) ([]*model.Customer, error) {
	return s.repo.Search(ctx, name)
}

type ProductRepository interface {
	Repository[model.Product, model.ProductPatch]
	Search(ctx context.Context, name string) ([]*model.Product, error)
}

type ProductService struct {
	*CRUD[model.Product, model.ProductPatch, *model.Product]
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{
		CRUD: NewCRUD[model.Product, model.ProductPatch]("product", repo),
		repo: repo,
	}
}

func (s *ProductService) Search(ctx context.Context, name string) ([]*model.Product, error) {
	return s.repo.Search(ctx, name)
}

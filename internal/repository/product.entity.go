package repository

import (
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type ProductEntity struct {
	ID      string  `json:"Product_ID"   gorm:"column:Product_ID;primaryKey"`
	Name    string  `json:"Product_Name" gorm:"column:Product_Name;not null"`
	TaxRate float64 `json:"Tax_Rate"     gorm:"column:Tax_Rate;not null"`
}

func (ProductEntity) TableName() string {
	return "products"
}

func toProductEntity(m *model.Product) *ProductEntity {
	if m == nil {
		return nil
	}
	return &ProductEntity{ID: m.ID, Name: m.Name, TaxRate: m.TaxRate}
}

func toProductModel(e *ProductEntity) *model.Product {
	if e == nil {
		return nil
	}
	return &model.Product{ID: e.ID, Name: e.Name, TaxRate: e.TaxRate}
}

func toProductModels(entities []*ProductEntity) []*model.Product {
	if entities == nil {
		return nil
	}
	models := make([]*model.Product, len(entities))
	for i, e := range entities {
		models[i] = toProductModel(e)
	}
	return models
}

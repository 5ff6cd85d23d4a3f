package repository

import (
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type ExpenseTypeEntity struct {
	ID          string  `json:"id"          gorm:"column:id;primaryKey"`
	Name        string  `json:"name"        gorm:"column:name;not null"`
	Category    string  `json:"category"    gorm:"column:category;not null"`
	Description *string `json:"description" gorm:"column:description"`
	IsActive    bool    `json:"is_active"   gorm:"column:is_active;not null"`
	CreatedAt   *string `json:"created_at"  gorm:"column:created_at"`
	UpdatedAt   *string `json:"updated_at"  gorm:"column:updated_at"`
}

func (ExpenseTypeEntity) TableName() string {
	return "expense_types"
}

func toExpenseTypeEntity(m *model.ExpenseType) *ExpenseTypeEntity {
	if m == nil {
		return nil
	}
	category := m.Category
	if category == "" {
		category = model.DefaultExpenseCategory
	}
	created, updated := timestamp(m.CreatedAt), timestamp(m.UpdatedAt)
	return &ExpenseTypeEntity{
		ID:          m.ID,
		Name:        m.Name,
		Category:    category,
		Description: nullable(m.Description),
		IsActive:    m.IsActive,
		CreatedAt:   &created,
		UpdatedAt:   &updated,
	}
}

func toExpenseTypeModel(e *ExpenseTypeEntity) *model.ExpenseType {
	if e == nil {
		return nil
	}
	return &model.ExpenseType{
		ID:          e.ID,
		Name:        e.Name,
		Category:    e.Category,
		Description: e.Description,
		IsActive:    e.IsActive,
		CreatedAt:   parseTimestamp(e.CreatedAt),
		UpdatedAt:   parseTimestamp(e.UpdatedAt),
	}
}

func toExpenseTypeModels(entities []*ExpenseTypeEntity) []*model.ExpenseType {
	if entities == nil {
		return nil
	}
	models := make([]*model.ExpenseType, len(entities))
	for i, e := range entities {
		models[i] = toExpenseTypeModel(e)
	}
	return models
}

package repository

import (
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type PaymentModeEntity struct {
	ID          string  `json:"id"          gorm:"column:id;primaryKey"`
	Name        string  `json:"name"        gorm:"column:name;not null"`
	Type        string  `json:"type"        gorm:"column:type;not null"`
	Description *string `json:"description" gorm:"column:description"`
	IsActive    bool    `json:"is_active"   gorm:"column:is_active;not null"`
	CreatedAt   *string `json:"created_at"  gorm:"column:created_at"`
	UpdatedAt   *string `json:"updated_at"  gorm:"column:updated_at"`
}

func (PaymentModeEntity) TableName() string {
	return "payment_modes"
}

func toPaymentModeEntity(m *model.PaymentMode) *PaymentModeEntity {
	if m == nil {
		return nil
	}
	kind := m.Type
	if kind == "" {
		kind = model.PaymentModeOther
	}
	created, updated := timestamp(m.CreatedAt), timestamp(m.UpdatedAt)
	return &PaymentModeEntity{
		ID:          m.ID,
		Name:        m.Name,
		Type:        string(kind),
		Description: nullable(m.Description),
		IsActive:    m.IsActive,
		CreatedAt:   &created,
		UpdatedAt:   &updated,
	}
}

func toPaymentModeModel(e *PaymentModeEntity) *model.PaymentMode {
	if e == nil {
		return nil
	}
	return &model.PaymentMode{
		ID:          e.ID,
		Name:        e.Name,
		Type:        model.PaymentModeType(e.Type),
		Description: e.Description,
		IsActive:    e.IsActive,
		CreatedAt:   parseTimestamp(e.CreatedAt),
		UpdatedAt:   parseTimestamp(e.UpdatedAt),
	}
}

func toPaymentModeModels(entities []*PaymentModeEntity) []*model.PaymentMode {
	if entities == nil {
		return nil
	}
	models := make([]*model.PaymentMode, len(entities))
	for i, e := range entities {
		models[i] = toPaymentModeModel(e)
	}
	return models
}

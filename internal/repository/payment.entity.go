package repository

import (
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type PaymentEntity struct {
	ID               string  `json:"id"                 gorm:"column:id;primaryKey"`
	CustomerEventNo  string  `json:"customer_event_no"  gorm:"column:customer_event_no;not null"`
	PayingPersonName string  `json:"paying_person_name" gorm:"column:paying_person_name;not null"`
	PaymentType      string  `json:"payment_type"       gorm:"column:payment_type;not null"`
	Amount           float64 `json:"amount"             gorm:"column:amount;not null"`
	Status           string  `json:"status"             gorm:"column:status;not null"`
	ReferenceNumber  *string `json:"reference_number"   gorm:"column:reference_number"`
	Notes            *string `json:"notes"              gorm:"column:notes"`
	PaymentDate      string  `json:"payment_date"       gorm:"column:payment_date;not null"`
	CreatedAt        *string `json:"created_at"         gorm:"column:created_at"`
	UpdatedAt        *string `json:"updated_at"         gorm:"column:updated_at"`
}

func (PaymentEntity) TableName() string {
	return "payments"
}

func toPaymentEntity(m *model.Payment) *PaymentEntity {
	if m == nil {
		return nil
	}
	status := m.Status
	if status == "" {
		status = model.PaymentStatusPending
	}
	created, updated := timestamp(m.CreatedAt), timestamp(m.UpdatedAt)
	return &PaymentEntity{
		ID:               m.ID,
		CustomerEventNo:  m.CustomerEventNo,
		PayingPersonName: m.PayingPersonName,
		PaymentType:      m.PaymentType,
		Amount:           m.Amount,
		Status:           string(status),
		ReferenceNumber:  nullable(m.ReferenceNumber),
		Notes:            nullable(m.Notes),
		PaymentDate:      dateText(m.PaymentDate),
		CreatedAt:        &created,
		UpdatedAt:        &updated,
	}
}

func toPaymentModel(e *PaymentEntity) *model.Payment {
	if e == nil {
		return nil
	}
	return &model.Payment{
		ID:               e.ID,
		CustomerEventNo:  e.CustomerEventNo,
		PayingPersonName: e.PayingPersonName,
		PaymentType:      e.PaymentType,
		Amount:           e.Amount,
		Status:           model.PaymentStatus(e.Status),
		ReferenceNumber:  e.ReferenceNumber,
		Notes:            e.Notes,
		PaymentDate:      parseDate(e.PaymentDate),
		CreatedAt:        parseTimestamp(e.CreatedAt),
		UpdatedAt:        parseTimestamp(e.UpdatedAt),
	}
}

func toPaymentModels(entities []*PaymentEntity) []*model.Payment {
	if entities == nil {
		return nil
	}
	models := make([]*model.Payment, len(entities))
	for i, e := range entities {
		models[i] = toPaymentModel(e)
	}
	return models
}

package repository

import (
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type CustomerEventEntity struct {
	EventNo            string  `json:"Event_No"                gorm:"column:Event_No;primaryKey"`
	Name               string  `json:"Event_Name"              gorm:"column:Event_Name;not null"`
	CustomerID         string  `json:"Customer_ID"             gorm:"column:Customer_ID;not null"`
	ProductID          string  `json:"Product_ID"              gorm:"column:Product_ID;not null"`
	CustomerName       *string `json:"Customer_Name"           gorm:"column:Customer_Name"`
	Quantity           float64 `json:"Quantity"                gorm:"column:Quantity;not null"`
	Amount             float64 `json:"Amount"                  gorm:"column:Amount;not null"`
	EventDate          string  `json:"Event_Date"              gorm:"column:Event_Date;not null"`
	ExpectedFinishDate *string `json:"Expected_Finishing_Date" gorm:"column:Expected_Finishing_Date"`
	Status             string  `json:"Status"                  gorm:"column:Status;not null"`
}

func (CustomerEventEntity) TableName() string {
	return "customer_events"
}

func toCustomerEventEntity(m *model.CustomerEvent) *CustomerEventEntity {
	if m == nil {
		return nil
	}
	status := m.Status
	if status == "" {
		status = model.EventStatusActive
	}
	return &CustomerEventEntity{
		EventNo:            m.EventNo,
		Name:               m.Name,
		CustomerID:         m.CustomerID,
		ProductID:          m.ProductID,
		CustomerName:       nullable(&m.CustomerName),
		Quantity:           m.Quantity,
		Amount:             m.AgreedAmount,
		EventDate:          dateText(m.EventDate),
		ExpectedFinishDate: optionalDateText(m.ExpectedFinishDate),
		Status:             string(status),
	}
}

func toCustomerEventModel(e *CustomerEventEntity) *model.CustomerEvent {
	if e == nil {
		return nil
	}
	return &model.CustomerEvent{
		EventNo:            e.EventNo,
		Name:               e.Name,
		CustomerID:         e.CustomerID,
		ProductID:          e.ProductID,
		CustomerName:       deref(e.CustomerName),
		Quantity:           e.Quantity,
		AgreedAmount:       e.Amount,
		EventDate:          parseDate(e.EventDate),
		ExpectedFinishDate: parseOptionalDate(e.ExpectedFinishDate),
		Status:             model.EventStatus(e.Status),
	}
}

func toCustomerEventModels(entities []*CustomerEventEntity) []*model.CustomerEvent {
	if entities == nil {
		return nil
	}
	models := make([]*model.CustomerEvent, len(entities))
	for i, e := range entities {
		models[i] = toCustomerEventModel(e)
	}
	return models
}

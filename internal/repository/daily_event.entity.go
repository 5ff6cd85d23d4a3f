package repository

import (
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type DailyEventEntity struct {
	EventID         string  `json:"Event_ID"          gorm:"column:Event_ID;primaryKey"`
	Name            *string `json:"Event_Name"        gorm:"column:Event_Name"`
	CustomerID      string  `json:"Customer_ID"       gorm:"column:Customer_ID;not null"`
	ProductID       *string `json:"Product_ID"        gorm:"column:Product_ID"`
	CustomerName    *string `json:"Customer_Name"     gorm:"column:Customer_Name"`
	ExpenseType     *string `json:"Expense_Type"      gorm:"column:Expense_Type"`
	Description     *string `json:"Description"       gorm:"column:Description"`
	Amount          float64 `json:"Amount"            gorm:"column:Amount;not null"`
	EventDate       string  `json:"Event_Date"        gorm:"column:Event_Date;not null"`
	CustomerEventNo *string `json:"customer_event_no" gorm:"column:customer_event_no"`
}

func (DailyEventEntity) TableName() string {
	return "daily_events"
}

func toDailyEventEntity(m *model.DailyEvent) *DailyEventEntity {
	if m == nil {
		return nil
	}
	return &DailyEventEntity{
		EventID:         m.EventID,
		Name:            nullable(&m.Name),
		CustomerID:      m.CustomerID,
		ProductID:       nullable(m.ProductID),
		CustomerName:    nullable(&m.CustomerName),
		ExpenseType:     nullable(&m.ExpenseType),
		Description:     nullable(m.Description),
		Amount:          m.Amount,
		EventDate:       dateText(m.Date),
		CustomerEventNo: nullable(m.CustomerEventNo),
	}
}

func toDailyEventModel(e *DailyEventEntity) *model.DailyEvent {
	if e == nil {
		return nil
	}
	return &model.DailyEvent{
		EventID:         e.EventID,
		Name:            deref(e.Name),
		CustomerID:      e.CustomerID,
		ProductID:       e.ProductID,
		CustomerName:    deref(e.CustomerName),
		ExpenseType:     deref(e.ExpenseType),
		Description:     e.Description,
		Amount:          e.Amount,
		Date:            parseDate(e.EventDate),
		CustomerEventNo: e.CustomerEventNo,
	}
}

func toDailyEventModels(entities []*DailyEventEntity) []*model.DailyEvent {
	if entities == nil {
		return nil
	}
	models := make([]*model.DailyEvent, len(entities))
	for i, e := range entities {
		models[i] = toDailyEventModel(e)
	}
	return models
}

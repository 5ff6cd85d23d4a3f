package repository

import (
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

type CustomerEntity struct {
	ID            string  `json:"Customer_ID"    gorm:"column:Customer_ID;primaryKey"`
	Name          string  `json:"Customer_Name"  gorm:"column:Customer_Name;not null"`
	Location      *string `json:"Location"       gorm:"column:Location"`
	ContactPerson *string `json:"Contact_Person" gorm:"column:Contact_Person"`
	Mobile        *string `json:"Mobile_Number"  gorm:"column:Mobile_Number"`
	GSTNumber     *string `json:"GST_Number"     gorm:"column:GST_Number"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:            m.ID,
		Name:          m.Name,
		Location:      nullable(m.Location),
		ContactPerson: nullable(m.ContactPerson),
		Mobile:        nullable(m.Mobile),
		GSTNumber:     nullable(m.GSTNumber),
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:            e.ID,
		Name:          e.Name,
		Location:      e.Location,
		ContactPerson: e.ContactPerson,
		Mobile:        e.Mobile,
		GSTNumber:     e.GSTNumber,
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	if entities == nil {
		return nil
	}
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}

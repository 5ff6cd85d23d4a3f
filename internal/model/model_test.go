package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		d, err := ParseDate("2024-03-09")
		require.NoError(t, err)
		assert.Equal(t, NewDate(2024, time.March, 9), d)
	})

	t.Run("legacy timestamp is truncated to the day", func(t *testing.T) {
		d, err := ParseDate("2024-03-09T14:25:00.000")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-09", d.String())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseDate("09/03/2024")
		assert.Error(t, err)
	})
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Due  *Date `json:"due,omitempty"`
		When Date  `json:"when"`
	}

	b, err := json.Marshal(wrapper{When: NewDate(2024, time.January, 2)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"2024-01-02"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"when":"2024-05-06","due":null}`), &w))
	assert.Equal(t, "2024-05-06", w.When.String())
	assert.Nil(t, w.Due)
}

func TestCustomerEvent_Validate(t *testing.T) {
	valid := CustomerEvent{
		Name:         "Hall decoration",
		CustomerID:   "CUST0001",
		ProductID:    "PROD0001",
		Quantity:     1,
		AgreedAmount: 1000,
		EventDate:    NewDate(2024, time.May, 1),
		Status:       EventStatusActive,
	}
	assert.NoError(t, valid.Validate())

	zeroQty := valid
	zeroQty.Quantity = 0
	assert.ErrorIs(t, zeroQty.Validate(), ErrValidation)

	badStatus := valid
	badStatus.Status = "archived"
	assert.ErrorIs(t, badStatus.Validate(), ErrValidation)

	negative := valid
	negative.AgreedAmount = -1
	assert.ErrorIs(t, negative.Validate(), ErrValidation)
}

func TestPayment_Validate(t *testing.T) {
	p := Payment{
		CustomerEventNo:  "CE0001",
		PayingPersonName: "Asha",
		PaymentType:      "upi",
		Amount:           250,
		Status:           PaymentStatusPartial,
		PaymentDate:      NewDate(2024, time.June, 3),
	}
	assert.NoError(t, p.Validate())

	p.Amount = 0
	assert.ErrorIs(t, p.Validate(), ErrValidation)
}

func TestEventStatus_Closing(t *testing.T) {
	assert.False(t, EventStatusActive.Closing())
	assert.True(t, EventStatusCompleted.Closing())
	assert.True(t, EventStatusCancelled.Closing())
}

func TestPatches_Validate(t *testing.T) {
	assert.NoError(t, CustomerPatch{}.Validate())
	assert.ErrorIs(t, CustomerPatch{Name: Ptr("  ")}.Validate(), ErrValidation)
	assert.ErrorIs(t, ProductPatch{TaxRate: Ptr(-5.0)}.Validate(), ErrValidation)
	mode := PaymentModeType("barter")
	assert.ErrorIs(t, PaymentModePatch{Type: &mode}.Validate(), ErrValidation)
}

package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// idSequence hands out prefixed, zero-padded identifiers such as CUST0007.
type idSequence struct {
	table  string
	column string
	prefix string
	width  int
}

var (
	customerIDs      = idSequence{table: "customers", column: "Customer_ID", prefix: "CUST", width: 4}
	productIDs       = idSequence{table: "products", column: "Product_ID", prefix: "PROD", width: 4}
	customerEventIDs = idSequence{table: "customer_events", column: "Event_No", prefix: "CE", width: 4}
	dailyEventIDs    = idSequence{table: "daily_events", column: "Event_ID", prefix: "EVT", width: 4}
	expenseTypeIDs   = idSequence{table: "expense_types", column: "id", prefix: "ET", width: 4}
	paymentModeIDs   = idSequence{table: "payment_modes", column: "id", prefix: "PM", width: 4}
	paymentIDs       = idSequence{table: "payments", column: "id", prefix: "PAY", width: 6}
)

func (s idSequence) format(n int) string {
	return fmt.Sprintf("%s%0*d", s.prefix, s.width, n)
}

// next returns max(suffix)+1. Ids with a non-numeric suffix are ignored.
// Two callers racing between next and insert can get the same id; the
// loser's Create then reports a constraint violation.
func (s idSequence) next(ctx context.Context, db *gorm.DB) (string, error) {
	var ids []string
	err := db.WithContext(ctx).Table(s.table).
		Where(s.column+" LIKE ?", s.prefix+"%").
		Pluck(s.column, &ids).Error
	if err != nil {
		return "", fmt.Errorf("generate %s id: %w", s.prefix, err)
	}

	highest := 0
	for _, id := range ids {
		n, err := strconv.Atoi(strings.TrimPrefix(id, s.prefix))
		if err != nil || n < 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}

	for n := highest + 1; ; n++ {
		candidate := s.format(n)
		var taken int64
		if err := db.WithContext(ctx).Table(s.table).Where(s.column+" = ?", candidate).Count(&taken).Error; err != nil {
			return "", fmt.Errorf("generate %s id: %w", s.prefix, err)
		}
		if taken == 0 {
			return candidate, nil
		}
	}
}

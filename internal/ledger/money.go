// Package ledger holds the bookkeeping rules: job budgets, tax
// back-calculation, payment validation and payment summaries. It does no
// I/O; callers pass in the amounts they loaded.
package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

// amountTolerance is the difference below which two money values are equal.
const amountTolerance = 0.01

// FormatAmount renders a money value with two decimals.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < amountTolerance
}

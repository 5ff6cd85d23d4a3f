package ledger

import (
	"fmt"
	"math"
)

const (
	LabelRemaining  = "Remaining"
	LabelOverBudget = "Over Budget"
)

// Budget compares a job's agreed amount with what was spent on it.
type Budget struct {
	AgreedAmount float64 `json:"agreed_amount"`
	TotalSpent   float64 `json:"total_spent"`
	Remaining    float64 `json:"remaining"`
	IsOverBudget bool    `json:"is_over_budget"`
}

func ComputeBudget(agreed float64, expenses []float64) Budget {
	spent := sum(expenses)
	remaining := agreed - spent
	return Budget{
		AgreedAmount: agreed,
		TotalSpent:   spent,
		Remaining:    remaining,
		IsOverBudget: remaining < 0,
	}
}

func (b Budget) Label() string {
	if b.IsOverBudget {
		return LabelOverBudget
	}
	return LabelRemaining
}

// DisplayAmount is the remaining amount without its sign.
func (b Budget) DisplayAmount() float64 {
	return math.Abs(b.Remaining)
}

func (b Budget) String() string {
	return fmt.Sprintf("%s: %s", b.Label(), FormatAmount(b.DisplayAmount()))
}

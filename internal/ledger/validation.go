package ledger

import "fmt"

const (
	MsgNoPayments = "no payment records found"
	MsgSatisfied  = "payment is satisfied"
)

// PaymentValidation tells whether a job may be closed. It never blocks
// anything itself; callers decide what to do with an invalid result.
type PaymentValidation struct {
	TotalPaid             float64 `json:"total_paid"`
	TotalExpenses         float64 `json:"total_expenses"`
	AgreedAmount          float64 `json:"agreed_amount"`
	HasPayments           bool    `json:"has_payments"`
	IsPaymentSatisfied    bool    `json:"is_payment_satisfied"`
	IsExpenseWithinBudget bool    `json:"is_expense_within_budget"`
	IsValid               bool    `json:"is_valid"`
	Message               string  `json:"message"`
}

// ValidatePayment checks the payments and expenses recorded against a job
// with the given agreed amount.
func ValidatePayment(agreed float64, payments, expenses []float64) PaymentValidation {
	v := PaymentValidation{
		TotalPaid:     sum(payments),
		TotalExpenses: sum(expenses),
		AgreedAmount:  agreed,
		HasPayments:   len(payments) > 0,
	}
	v.IsPaymentSatisfied = v.TotalPaid >= agreed
	v.IsExpenseWithinBudget = v.TotalExpenses <= agreed
	v.IsValid = v.IsPaymentSatisfied && v.IsExpenseWithinBudget

	switch {
	case !v.HasPayments:
		v.Message = MsgNoPayments
	case !v.IsPaymentSatisfied:
		v.Message = fmt.Sprintf("payment amount (%s) is less than agreed amount (%s)",
			FormatAmount(v.TotalPaid), FormatAmount(agreed))
	case !v.IsExpenseWithinBudget:
		v.Message = fmt.Sprintf("total expenses (%s) exceed agreed amount (%s)",
			FormatAmount(v.TotalExpenses), FormatAmount(agreed))
	default:
		v.Message = MsgSatisfied
	}
	return v
}

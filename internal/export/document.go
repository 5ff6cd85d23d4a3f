// Package export builds the receipt document handed to the external
// renderer and delivers queued documents to a sink.
package export

import (
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/ledger"
	"github.com/Fcatilizer/bookkeep-sub001/internal/model"
)

// Line is one expense as the renderer prints it.
type Line struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	ExpenseType string `json:"expense_type"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
}

// Amounts are pre-formatted so the renderer never rounds.
type Amounts struct {
	Agreed      string `json:"agreed"`
	Base        string `json:"base"`
	Tax         string `json:"tax"`
	TaxRate     string `json:"tax_rate"`
	Spent       string `json:"spent"`
	Remaining   string `json:"remaining"`
	BudgetLabel string `json:"budget_label"`
	Paid        string `json:"paid"`
}

// Document is the renderer's whole input for one job.
type Document struct {
	Event       *model.CustomerEvent     `json:"event"`
	Customer    *model.Customer          `json:"customer"`
	Product     *model.Product           `json:"product,omitempty"`
	Expenses    []Line                   `json:"expenses"`
	Budget      ledger.Budget            `json:"budget"`
	Tax         ledger.TaxBreakdown      `json:"tax"`
	Validation  ledger.PaymentValidation `json:"payment_validation"`
	Amounts     Amounts                  `json:"amounts"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// Build derives the budget, tax split and payment position for event. A nil
// product means no tax.
func Build(event *model.CustomerEvent, customer *model.Customer, product *model.Product,
	expenses []*model.DailyEvent, payments []*model.Payment, now time.Time) *Document {
	spent := make([]float64, 0, len(expenses))
	lines := make([]Line, 0, len(expenses))
	for _, e := range expenses {
		spent = append(spent, e.Amount)
		line := Line{
			ID:          e.EventID,
			Date:        e.Date.String(),
			Name:        e.Name,
			ExpenseType: e.ExpenseType,
			Amount:      ledger.FormatAmount(e.Amount),
		}
		if e.Description != nil {
			line.Description = *e.Description
		}
		lines = append(lines, line)
	}

	paid := make([]float64, 0, len(payments))
	for _, p := range payments {
		paid = append(paid, p.Amount)
	}

	rate := 0.0
	if product != nil {
		rate = product.TaxRate
	}

	budget := ledger.ComputeBudget(event.AgreedAmount, spent)
	tax := ledger.SplitTax(event.AgreedAmount, rate)
	validation := ledger.ValidatePayment(event.AgreedAmount, paid, spent)

	return &Document{
		Event:      event,
		Customer:   customer,
		Product:    product,
		Expenses:   lines,
		Budget:     budget,
		Tax:        tax,
		Validation: validation,
		Amounts: Amounts{
			Agreed:      ledger.FormatAmount(event.AgreedAmount),
			Base:        ledger.FormatAmount(tax.BaseAmount),
			Tax:         ledger.FormatAmount(tax.TaxAmount),
			TaxRate:     ledger.FormatAmount(tax.Rate),
			Spent:       ledger.FormatAmount(budget.TotalSpent),
			Remaining:   ledger.FormatAmount(budget.DisplayAmount()),
			BudgetLabel: budget.Label(),
			Paid:        ledger.FormatAmount(validation.TotalPaid),
		},
		GeneratedAt: now.UTC(),
	}
}

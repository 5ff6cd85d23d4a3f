package ledger

// TaxBreakdown splits a tax-inclusive amount into base and tax.
type TaxBreakdown struct {
	Rate       float64 `json:"rate"`
	BaseAmount float64 `json:"base_amount"`
	TaxAmount  float64 `json:"tax_amount"`
	Total      float64 `json:"total"`
}

// SplitTax back-calculates from an amount that already includes tax at rate
// percent. A rate of zero or below means no tax. Nothing is rounded.
func SplitTax(amount, rate float64) TaxBreakdown {
	if rate <= 0 {
		return TaxBreakdown{Rate: 0, BaseAmount: amount, TaxAmount: 0, Total: amount}
	}
	base := amount / (1 + rate/100)
	return TaxBreakdown{
		Rate:       rate,
		BaseAmount: base,
		TaxAmount:  amount - base,
		Total:      amount,
	}
}

// ApplyTax is the forward direction: base plus tax at rate percent.
func ApplyTax(base, rate float64) float64 {
	if rate <= 0 {
		return base
	}
	return base * (1 + rate/100)
}

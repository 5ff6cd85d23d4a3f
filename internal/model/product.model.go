package model

type Product struct {
	ID      string  `json:"product_id"`
	Name    string  `json:"product_name"`
	TaxRate float64 `json:"tax_rate"`
}

func (p *Product) Key() string      { return p.ID }
func (p *Product) SetKey(id string) { p.ID = id }
func (p *Product) Validate() error {
	if blank(p.Name) {
		return invalid("product name is required")
	}
	if p.TaxRate < 0 {
		return invalid("tax rate must not be negative")
	}
	return nil
}

type ProductPatch struct {
	Name    *string  `json:"product_name"`
	TaxRate *float64 `json:"tax_rate"`
}

func (p ProductPatch) Validate() error {
	if p.Name != nil && blank(*p.Name) {
		return invalid("product name is required")
	}
	if p.TaxRate != nil && *p.TaxRate < 0 {
		return invalid("tax rate must not be negative")
	}
	return nil
}

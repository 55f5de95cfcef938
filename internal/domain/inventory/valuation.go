package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Valuation valor del stock a precio unitario del catálogo.
type Valuation struct {
	Units int64
	Net   decimal.Decimal // Σ cantidad × precio
	Tax   decimal.Decimal // Σ cantidad × precio × GST%
	Gross decimal.Decimal
}

// Value valoriza las líneas. Los ítems sintetizados tienen precio 0.
func Value(lines []StockLine) Valuation {
	v := Valuation{Net: decimal.Zero, Tax: decimal.Zero}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		qty := decimal.NewFromInt(l.Quantity)
		net := l.Item.UnitRate.Mul(qty)
		v.Units += l.Quantity
		v.Net = v.Net.Add(net)
		v.Tax = v.Tax.Add(net.Mul(l.Item.TaxRatePercent).Div(hundred))
	}
	v.Net = v.Net.Round(2)
	v.Tax = v.Tax.Round(2)
	v.Gross = v.Net.Add(v.Tax)
	return v
}

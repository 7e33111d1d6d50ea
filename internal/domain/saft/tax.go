package saft

import "github.com/shopspring/decimal"

// StandardVATRate is the Norwegian standard rate (25%).
var StandardVATRate = decimal.NewFromFloat(0.25)

// VATPolicy computes the tax block of a ledger line from a VAT-inclusive gross
// amount at a single flat rate.
//
// This is a deliberate simplification carried over from the register: actual
// per-product tax rates are not consulted, every line is treated as standard
// rated. The rate is injectable so a richer tax model can be introduced without
// touching the assemblers.
type VATPolicy struct {
	rate decimal.Decimal
}

// NewVATPolicy builds a policy for the given rate (0.25 = 25%).
func NewVATPolicy(rate decimal.Decimal) VATPolicy {
	return VATPolicy{rate: rate}
}

// StandardVATPolicy returns the flat 25% policy used by the register.
func StandardVATPolicy() VATPolicy {
	return VATPolicy{rate: StandardVATRate}
}

// TaxCode is the SAF-T standard-rate VAT code.
func (p VATPolicy) TaxCode() string {
	return "1"
}

// TaxPercentage formats the rate as a percentage with two decimals ("25.00").
func (p VATPolicy) TaxPercentage() string {
	return p.rate.Mul(decimal.NewFromInt(100)).StringFixed(2)
}

// TaxAmount returns the VAT portion of a gross (VAT-inclusive) amount in minor
// units: round(amount · r / (1+r)), rounded half away from zero.
func (p VATPolicy) TaxAmount(grossMinor int64) int64 {
	gross := decimal.NewFromInt(grossMinor)
	vat := gross.Mul(p.rate).Div(p.rate.Add(decimal.NewFromInt(1)))
	return vat.Round(0).IntPart()
}

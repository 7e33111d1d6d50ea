package saft_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordkassa/kassa-api/internal/domain/saft"
)

// TestTaxAmount_StandardRate checks the VAT-inclusive formula against known
// vectors: TaxAmount = round(amount * 0.25 / 1.25) for gross amounts in øre.
func TestTaxAmount_StandardRate(t *testing.T) {
	p := saft.StandardVATPolicy()

	cases := []struct {
		name  string
		gross int64
		want  int64
	}{
		{"ti kroner", 10000, 2000},
		{"zero", 0, 0},
		{"one øre rounds down", 1, 0},
		{"three øre rounds up", 3, 1},
		{"no remainder", 125, 25},
		{"odd amount", 9999, 2000},
		{"with tip-sized amount", 500, 100},
		{"large amount", 123456789, 24691358},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.TaxAmount(tc.gross))
		})
	}
}

// TestTaxAmount_MatchesFloatFormula sweeps a range of amounts and checks the
// decimal computation agrees with round(A*0.25/1.25) done in floating point,
// which is how the original register computed it.
func TestTaxAmount_MatchesFloatFormula(t *testing.T) {
	p := saft.StandardVATPolicy()
	for a := int64(0); a <= 100_000; a += 7 {
		want := int64(math.Round(float64(a) * 0.25 / 1.25))
		require.Equal(t, want, p.TaxAmount(a), "amount %d", a)
	}
}

// TestTaxPercentage_Formatting checks the fixed two-decimal rendering used in
// the TaxInformation block.
func TestTaxPercentage_Formatting(t *testing.T) {
	assert.Equal(t, "25.00", saft.StandardVATPolicy().TaxPercentage())

	reduced := saft.NewVATPolicy(decimal.NewFromFloat(0.15))
	assert.Equal(t, "15.00", reduced.TaxPercentage())
}

func TestTaxCode_StandardRate(t *testing.T) {
	assert.Equal(t, "1", saft.StandardVATPolicy().TaxCode())
}

// TestTaxAmount_ConfigurableRate verifies the rate is not hardcoded: a 15%
// policy treats the gross as inclusive at 15%.
func TestTaxAmount_ConfigurableRate(t *testing.T) {
	p := saft.NewVATPolicy(decimal.NewFromFloat(0.15))
	// 11500 gross at 15% inclusive -> 1500 VAT
	assert.Equal(t, int64(1500), p.TaxAmount(11500))
}

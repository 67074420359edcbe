package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysis_BasicFigures(t *testing.T) {
	a := Calculate(100, CostBreakdown{
		BaseCost:    40,
		Shipping:    5,
		PlatformFee: 10,
		PaymentFee:  3,
		VAT:         20,
	})

	assert.InDelta(t, 58, a.TotalCosts(), 1e-9) // VAT excluded
	assert.InDelta(t, 42, a.Profit(), 1e-9)
	assert.InDelta(t, 42, a.Margin(), 1e-9)
	assert.InDelta(t, 42.0/58.0*100, a.ROI(), 1e-9)
}

func TestAnalysis_ZeroRevenueAndCosts(t *testing.T) {
	a := Calculate(0, CostBreakdown{})
	assert.Equal(t, 0.0, a.Margin())
	assert.Equal(t, 0.0, a.ROI())
	assert.Equal(t, 0, a.BreakEvenUnits())
}

func TestAnalysis_BreakEvenUnits(t *testing.T) {
	// contribution = 100 − 40 = 60, totalCosts = 58 → ceil(58/60) = 1
	a := Calculate(100, CostBreakdown{BaseCost: 40, Shipping: 5, PlatformFee: 10, PaymentFee: 3})
	assert.Equal(t, 1, a.BreakEvenUnits())

	// contribution = 10 − 8 = 2, totalCosts = 9 → ceil(9/2) = 5
	b := Calculate(10, CostBreakdown{BaseCost: 8, Shipping: 1})
	assert.Equal(t, 5, b.BreakEvenUnits())

	// non-positive contribution clamps to 0
	c := Calculate(10, CostBreakdown{BaseCost: 12})
	assert.Equal(t, 0, c.BreakEvenUnits())
}

func TestAnalysis_ProfitabilityLadder(t *testing.T) {
	cases := []struct {
		revenue  float64
		baseCost float64
		want     Level
	}{
		{100, 50, LevelExcellent},   // 50%
		{100, 65, LevelVeryGood},    // 35%
		{100, 78, LevelGood},        // 22%
		{100, 88, LevelFair},        // 12%
		{100, 96, LevelLow},         // 4%
		{100, 110, LevelLossMaking}, // −10%
	}
	for _, tc := range cases {
		a := Calculate(tc.revenue, CostBreakdown{BaseCost: tc.baseCost})
		assert.Equal(t, tc.want, a.ProfitabilityLevel(), "base cost %v", tc.baseCost)
	}
}

func TestAnalysis_RiskElevation(t *testing.T) {
	// healthy: 40% margin, ROI well above 10, balanced costs
	healthy := Calculate(100, CostBreakdown{BaseCost: 30, Shipping: 10, PlatformFee: 15, PaymentFee: 5})
	assert.Equal(t, RiskLow, healthy.Risk().Level)

	// thin margin: 12% → medium, ROI ≈ 13.6 keeps it medium
	thin := Calculate(100, CostBreakdown{BaseCost: 40, Shipping: 18, PlatformFee: 20, PaymentFee: 10})
	risk := thin.Risk()
	assert.Equal(t, RiskMedium, risk.Level)
	assert.NotEmpty(t, risk.Reasons)

	// thin margin plus low ROI and dominant base cost → high
	squeezed := Calculate(100, CostBreakdown{BaseCost: 88, Shipping: 2, PlatformFee: 1, PaymentFee: 1})
	assert.Equal(t, RiskHigh, squeezed.Risk().Level)
	assert.GreaterOrEqual(t, len(squeezed.Risk().Reasons), 2)
}

func TestAnalysis_SuggestionsForThinMargin(t *testing.T) {
	a := Calculate(100, CostBreakdown{BaseCost: 80, Shipping: 5, PlatformFee: 3, PaymentFee: 2})
	suggestions := a.Suggestions()
	assert.NotEmpty(t, suggestions)
	assert.Contains(t, suggestions[0], "increase price")
}

func TestAnalysis_LossMakingSuggestion(t *testing.T) {
	a := Calculate(50, CostBreakdown{BaseCost: 60})
	suggestions := a.Suggestions()
	assert.NotEmpty(t, suggestions)
	assert.Contains(t, suggestions[0], "does not cover")
}

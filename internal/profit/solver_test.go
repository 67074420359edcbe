package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveTargetMargin(t *testing.T) {
	fees := FeeContext{PlatformFeePercent: 10, PaymentFeePercent: 3}

	price, err := SolveTargetMargin(60, 25, fees)
	assert.NoError(t, err)
	// denominator = 1 − 0.25 − 0.13 = 0.62
	assert.InDelta(t, 60.0/0.62, price, 1e-9)
	assert.InDelta(t, 96.77, price, 0.01)
}

func TestSolveTargetMargin_RoundTrip(t *testing.T) {
	fees := FeeContext{PlatformFeePercent: 10, PaymentFeePercent: 3}
	price, err := SolveTargetMargin(60, 25, fees)
	assert.NoError(t, err)

	a := Calculate(price, CostBreakdown{
		BaseCost:    60,
		PlatformFee: price * fees.PlatformFeePercent / 100,
		PaymentFee:  price * fees.PaymentFeePercent / 100,
	})
	assert.InDelta(t, 25, a.Margin(), 1e-9)
}

func TestSolveTargetMargin_Infeasible(t *testing.T) {
	fees := FeeContext{PlatformFeePercent: 60, PaymentFeePercent: 45}
	_, err := SolveTargetMargin(60, 25, fees)
	assert.ErrorIs(t, err, ErrInfeasibleTarget)

	// fee percentages plus margin exactly 100%
	_, err = SolveTargetMargin(60, 90, FeeContext{PlatformFeePercent: 10})
	assert.ErrorIs(t, err, ErrInfeasibleTarget)
}

func TestSolveTargetMargin_MarginAtOrAbove100(t *testing.T) {
	_, err := SolveTargetMargin(60, 100, FeeContext{})
	assert.ErrorIs(t, err, ErrInfeasibleTarget)

	_, err = SolveTargetMargin(60, 140, FeeContext{})
	assert.ErrorIs(t, err, ErrInfeasibleTarget)
}

func TestSolveTargetMargin_NegativeCost(t *testing.T) {
	_, err := SolveTargetMargin(-1, 20, FeeContext{})
	assert.ErrorIs(t, err, ErrInvalidCost)
}

package profit

import "errors"

var (
	// ErrInfeasibleTarget means the target margin plus price-dependent fee
	// percentages leave no room for a positive price.
	ErrInfeasibleTarget = errors.New("infeasible_target_margin")
	// ErrInvalidCost means the fixed cost input is negative.
	ErrInvalidCost = errors.New("invalid_cost")
)

// FeeContext expresses the price-dependent fees of a sales channel as
// percentages of the final price, plus its fixed shipping cost.
type FeeContext struct {
	PlatformFeePercent float64 `json:"platform_fee_percent"`
	PaymentFeePercent  float64 `json:"payment_fee_percent"`
	ShippingCost       float64 `json:"shipping_cost"`
}

func (f FeeContext) percentSum() float64 {
	return f.PlatformFeePercent + f.PaymentFeePercent
}

// SolveTargetMargin returns the price at which
//
//	(price − cost − price×feePct/100) / price == targetMargin/100
//
// cost is the fixed, non-price-dependent cost (base cost plus shipping).
// The closed form is price = cost / (1 − targetMargin/100 − feePct/100);
// a non-positive denominator makes the target infeasible.
func SolveTargetMargin(cost, targetMargin float64, fees FeeContext) (float64, error) {
	if cost < 0 {
		return 0, ErrInvalidCost
	}
	if targetMargin >= 100 {
		return 0, ErrInfeasibleTarget
	}
	denominator := 1 - targetMargin/100 - fees.percentSum()/100
	if denominator <= 0 {
		return 0, ErrInfeasibleTarget
	}
	return cost / denominator, nil
}

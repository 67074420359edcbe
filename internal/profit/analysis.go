// Package profit computes profitability figures for a priced variant.
// All values are derived from their inputs; nothing here touches storage.
package profit

import (
	"fmt"
	"math"
)

// CostBreakdown is the cost side of a sale. VAT is carried for reporting
// but treated as a pass-through, so it never enters the cost base.
type CostBreakdown struct {
	BaseCost    float64 `json:"base_cost"`
	Shipping    float64 `json:"shipping"`
	PlatformFee float64 `json:"platform_fee"`
	PaymentFee  float64 `json:"payment_fee"`
	VAT         float64 `json:"vat"`
}

// Total returns the cost base used for margin and ROI.
func (c CostBreakdown) Total() float64 {
	return c.BaseCost + c.Shipping + c.PlatformFee + c.PaymentFee
}

// Level grades a margin on a fixed threshold ladder.
type Level string

const (
	LevelExcellent  Level = "excellent"
	LevelVeryGood   Level = "very_good"
	LevelGood       Level = "good"
	LevelFair       Level = "fair"
	LevelLow        Level = "low"
	LevelLossMaking Level = "loss_making"
)

// RiskLevel classifies how exposed a price point is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskAssessment pairs a risk level with the reasons that produced it.
type RiskAssessment struct {
	Level   RiskLevel `json:"level"`
	Reasons []string  `json:"reasons"`
}

// Analysis holds a revenue figure and its cost breakdown. Every metric is
// a computed method so the value stays trivially recomputable.
type Analysis struct {
	Revenue float64       `json:"revenue"`
	Costs   CostBreakdown `json:"costs"`
}

// Calculate builds an Analysis for a final price and its costs.
func Calculate(revenue float64, costs CostBreakdown) Analysis {
	return Analysis{Revenue: revenue, Costs: costs}
}

// TotalCosts returns the cost base (VAT excluded).
func (a Analysis) TotalCosts() float64 {
	return a.Costs.Total()
}

// Profit is revenue minus the cost base.
func (a Analysis) Profit() float64 {
	return a.Revenue - a.TotalCosts()
}

// Margin is profit as a percentage of revenue; 0 when revenue is 0.
func (a Analysis) Margin() float64 {
	if a.Revenue == 0 {
		return 0
	}
	return a.Profit() / a.Revenue * 100
}

// ROI is profit as a percentage of total costs; 0 when costs are 0.
func (a Analysis) ROI() float64 {
	costs := a.TotalCosts()
	if costs == 0 {
		return 0
	}
	return a.Profit() / costs * 100
}

// BreakEvenUnits is the minimum unit volume at which cumulative
// contribution margin covers total costs. 0 when the contribution margin
// or the profit is non-positive.
func (a Analysis) BreakEvenUnits() int {
	contribution := a.Revenue - a.Costs.BaseCost
	if contribution <= 0 || a.Profit() <= 0 {
		return 0
	}
	return int(math.Ceil(a.TotalCosts() / contribution))
}

// ProfitabilityLevel grades the margin.
func (a Analysis) ProfitabilityLevel() Level {
	margin := a.Margin()
	switch {
	case margin >= 50:
		return LevelExcellent
	case margin >= 30:
		return LevelVeryGood
	case margin >= 20:
		return LevelGood
	case margin >= 10:
		return LevelFair
	case margin > 0:
		return LevelLow
	default:
		return LevelLossMaking
	}
}

// Risk assesses pricing risk from margin, ROI and cost concentration.
func (a Analysis) Risk() RiskAssessment {
	margin := a.Margin()
	level := RiskLow
	reasons := make([]string, 0, 3)

	switch {
	case margin < 5:
		level = RiskHigh
		reasons = append(reasons, fmt.Sprintf("margin %.1f%% is below 5%%", margin))
	case margin < 15:
		level = RiskMedium
		reasons = append(reasons, fmt.Sprintf("margin %.1f%% is below 15%%", margin))
	}

	totalCosts := a.TotalCosts()
	if totalCosts > 0 && a.ROI() < 10 {
		level = elevate(level)
		reasons = append(reasons, fmt.Sprintf("ROI %.1f%% is below 10%%", a.ROI()))
	}
	if totalCosts > 0 && a.Costs.BaseCost/totalCosts > 0.80 {
		level = elevate(level)
		reasons = append(reasons, fmt.Sprintf("base cost is %.0f%% of total costs", a.Costs.BaseCost/totalCosts*100))
	}

	return RiskAssessment{Level: level, Reasons: reasons}
}

// Suggestions returns advisory hints derived from the same thresholds as
// ProfitabilityLevel and Risk. They never feed back into any computation.
func (a Analysis) Suggestions() []string {
	out := make([]string, 0, 3)
	margin := a.Margin()

	switch {
	case margin <= 0:
		out = append(out, "price does not cover total costs; increase the price or reduce costs")
	case margin < 20:
		if suggested, err := a.suggestedPrice(25); err == nil && suggested > a.Revenue {
			out = append(out, fmt.Sprintf("increase price to %.2f (+%.2f) to reach a 25%% margin", suggested, suggested-a.Revenue))
		} else {
			out = append(out, "margin is below 20%; consider a price increase")
		}
	}

	totalCosts := a.TotalCosts()
	if totalCosts > 0 && a.Costs.BaseCost/totalCosts > 0.80 {
		out = append(out, "base cost dominates total costs; negotiate supplier pricing")
	}
	if a.Revenue > 0 && a.Costs.Shipping/a.Revenue > 0.10 {
		out = append(out, "shipping exceeds 10% of revenue; review the shipping strategy")
	}

	return out
}

// suggestedPrice solves for the price that would hit the target margin,
// deriving fee percentages from the current revenue.
func (a Analysis) suggestedPrice(targetMargin float64) (float64, error) {
	if a.Revenue <= 0 {
		return 0, ErrInfeasibleTarget
	}
	fees := FeeContext{
		PlatformFeePercent: a.Costs.PlatformFee / a.Revenue * 100,
		PaymentFeePercent:  a.Costs.PaymentFee / a.Revenue * 100,
	}
	return SolveTargetMargin(a.Costs.BaseCost+a.Costs.Shipping, targetMargin, fees)
}

func elevate(level RiskLevel) RiskLevel {
	switch level {
	case RiskLow:
		return RiskMedium
	case RiskMedium:
		return RiskHigh
	default:
		return RiskHigh
	}
}

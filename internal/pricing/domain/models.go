// Package domain defines the pricing engine's scope API and value types.
package domain

import (
	"errors"

	"github.com/bwmarrin/snowflake"

	"github.com/merchantkit/pricora/internal/profit"
)

// AdjustmentKind names an ordered arithmetic operation on a price.
type AdjustmentKind string

const (
	DiscountPercent AdjustmentKind = "discount_percent"
	DiscountAmount  AdjustmentKind = "discount_amount"
	MarkupPercent   AdjustmentKind = "markup_percent"
	MarkupAmount    AdjustmentKind = "markup_amount"
	AdjustAmount    AdjustmentKind = "adjust_amount"
)

// Adjustment is one queued pipeline step. Adjustments live only for the
// duration of a single engine invocation and apply in enqueue order.
type Adjustment struct {
	Kind  AdjustmentKind `json:"kind"`
	Value float64        `json:"value"`
}

// Apply runs the adjustment against a price. The result never goes below
// zero.
func (a Adjustment) Apply(price float64) float64 {
	switch a.Kind {
	case DiscountPercent:
		price -= price * a.Value / 100
	case DiscountAmount:
		price -= a.Value
	case MarkupPercent:
		price += price * a.Value / 100
	case MarkupAmount:
		price += a.Value
	case AdjustAmount:
		price += a.Value
	}
	if price < 0 {
		return 0
	}
	return price
}

// VariantPricing is the persisted pricing state of one variant as seen by
// Get: no queued operations applied.
type VariantPricing struct {
	VariantID      snowflake.ID `json:"variant_id"`
	SKU            string       `json:"sku"`
	BasePrice      float64      `json:"base_price"`
	ChannelPrice   *float64     `json:"channel_price,omitempty"`
	EffectivePrice float64      `json:"effective_price"`
	DiscountPrice  *float64     `json:"discount_price,omitempty"`
	CostPrice      *float64     `json:"cost_price,omitempty"`
	Currency       string       `json:"currency"`
}

// PreviewRow is the before/after view of one variant under the queued
// pipeline. Adjusted is the pipeline result before rounding.
type PreviewRow struct {
	VariantID snowflake.ID `json:"variant_id"`
	Before    float64      `json:"before"`
	Adjusted  float64      `json:"adjusted"`
	After     float64      `json:"after"`
	Currency  string       `json:"currency"`
}

// Stats aggregates the effective prices of a scope.
type Stats struct {
	Count        int     `json:"count"`
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	OnDiscount   int     `json:"on_discount"`
}

// VariantProfit materializes a profit.Analysis for one variant.
type VariantProfit struct {
	VariantID      snowflake.ID          `json:"variant_id"`
	Revenue        float64               `json:"revenue"`
	Costs          profit.CostBreakdown  `json:"costs"`
	Profit         float64               `json:"profit"`
	Margin         float64               `json:"margin"`
	ROI            float64               `json:"roi"`
	BreakEvenUnits int                   `json:"break_even_units"`
	Level          profit.Level          `json:"level"`
	Risk           profit.RiskAssessment `json:"risk"`
	Suggestions    []string              `json:"suggestions"`
}

// NewVariantProfit flattens an analysis into its serializable row.
func NewVariantProfit(variantID snowflake.ID, a profit.Analysis) VariantProfit {
	return VariantProfit{
		VariantID:      variantID,
		Revenue:        a.Revenue,
		Costs:          a.Costs,
		Profit:         a.Profit(),
		Margin:         a.Margin(),
		ROI:            a.ROI(),
		BreakEvenUnits: a.BreakEvenUnits(),
		Level:          a.ProfitabilityLevel(),
		Risk:           a.Risk(),
		Suggestions:    a.Suggestions(),
	}
}

// FieldUpdate is one entry of a bulk update map. Nil fields keep their
// current value.
type FieldUpdate struct {
	Price         *float64 `json:"price,omitempty"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	CostPrice     *float64 `json:"cost_price,omitempty"`
}

// FailedVariant reports one variant whose write did not land.
type FailedVariant struct {
	VariantID snowflake.ID `json:"variant_id"`
	Reason    string       `json:"reason"`
}

// SaveSummary reports what a Save actually did. Updated can be lower than
// Requested; Failed then carries the deltas.
type SaveSummary struct {
	Target    string          `json:"target"`
	Requested int             `json:"requested"`
	Updated   int             `json:"updated"`
	Failed    []FailedVariant `json:"failed,omitempty"`
}

// PushPreview describes what Push would hand to the sync collaborator.
type PushPreview struct {
	ChannelCode string     `json:"channel_code"`
	Items       []PushItem `json:"items"`
}

// PushItem mirrors the outbound payload for one variant.
type PushItem struct {
	VariantID     snowflake.ID `json:"variant_id"`
	SKU           string       `json:"sku"`
	Price         float64      `json:"price"`
	DiscountPrice *float64     `json:"discount_price,omitempty"`
	Currency      string       `json:"currency"`
}

const (
	// TargetBase marks operations against the variant's own base price.
	TargetBase = "base"
)

var (
	ErrEmptyScope       = errors.New("empty_scope")
	ErrScopeNotSingular = errors.New("scope_not_singular")
	ErrNoChannel        = errors.New("no_channel_selected")
	ErrNoTargetMargin   = errors.New("no_target_margin")
	ErrNoFeeContext     = errors.New("no_fee_context")
	ErrMissingCost      = errors.New("missing_cost_price")
	ErrInvalidBulkMap   = errors.New("invalid_bulk_update")
	ErrSyncUnavailable  = errors.New("sync_dispatcher_unavailable")
)

package domain

import (
	"context"

	"github.com/merchantkit/pricora/internal/profit"
)

// Service builds pricing scopes.
type Service interface {
	// ForVariants scopes to an explicit list of variant ids.
	ForVariants(ids ...string) Scope
	// ForProduct scopes to a product; its variant set is resolved lazily
	// at operation time, not at construction.
	ForProduct(productID string) Scope
}

// Scope is a fluent pricing invocation: configure it with the chainable
// methods, then call exactly one terminal operation. Configuration errors
// stick to the scope and surface from the terminal call; read operations
// never write anything.
type Scope interface {
	// SalesChannel targets a channel by its stable code.
	SalesChannel(code string) Scope
	// Marketplace targets a channel by marketplace name and account.
	Marketplace(name, account string) Scope
	// Base targets the variants' own base price. Base wins when both
	// targets have been set.
	Base() Scope

	// Price sets an explicit override; requires a singular scope. The
	// override supersedes every queued adjustment.
	Price(value float64) Scope
	// Discount sets the discount price; requires a singular scope.
	Discount(value float64) Scope
	// Cost sets the cost price; requires a singular scope.
	Cost(value float64) Scope
	// ClearDiscount nulls the discount price for every variant in scope.
	ClearDiscount() Scope

	DiscountPercent(percent float64) Scope
	DiscountAmount(amount float64) Scope
	MarkupPercent(percent float64) Scope
	MarkupAmount(amount float64) Scope
	AdjustAmount(delta float64) Scope

	// BulkUpdate supplies an explicit variant→fields map. It bypasses the
	// singular-scope restriction and takes precedence over queued
	// adjustments at save time.
	BulkUpdate(updates map[string]FieldUpdate) Scope
	// CopyFrom copies pricing from another channel into the current
	// target at save time, before the queued pipeline runs.
	CopyFrom(channelCode string) Scope
	// Round selects the rounding strategy applied as the last step of
	// Preview and Save.
	Round(strategy string) Scope

	// WithFees overrides the fee context used by Profits and SolvePrice.
	WithFees(fees profit.FeeContext) Scope
	// TargetMargin sets the margin SolvePrice aims for.
	TargetMargin(percent float64) Scope

	// Get returns persisted pricing state; queued operations are ignored.
	Get(ctx context.Context) ([]VariantPricing, error)
	// Preview runs the full pipeline without writing. Its After values
	// are exactly what Save would persist.
	Preview(ctx context.Context) ([]PreviewRow, error)
	// Stats aggregates Get into average/min/max and a discount count.
	Stats(ctx context.Context) (*Stats, error)
	// Profits computes fresh profitability per variant in scope.
	Profits(ctx context.Context) ([]VariantProfit, error)
	// SolvePrice solves for the price hitting the target margin, stores
	// it as the scope's explicit override, and returns it.
	SolvePrice(ctx context.Context) (float64, error)
	// Save persists the pipeline result and triggers the downstream
	// profit recalculation.
	Save(ctx context.Context) (*SaveSummary, error)
	// Push hands the scope to the marketplace-sync collaborator and
	// returns the push id.
	Push(ctx context.Context) (string, error)
	// PreviewPush describes what Push would send, without sending.
	PreviewPush(ctx context.Context) (*PushPreview, error)
}

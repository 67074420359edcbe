// Package domain defines the marketplace-sync collaborator boundary. The
// pricing engine hands a variant scope and channel code across it and
// knows nothing about wire protocols.
package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// PushItem is one variant's channel price as it would be sent outbound.
type PushItem struct {
	VariantID     snowflake.ID `json:"variant_id"`
	SKU           string       `json:"sku"`
	Price         float64      `json:"price"`
	DiscountPrice *float64     `json:"discount_price,omitempty"`
	Currency      string       `json:"currency"`
}

// Dispatcher accepts hand-offs from the pricing engine and schedules the
// actual work out of band.
type Dispatcher interface {
	// EnqueuePush schedules a marketplace price push and returns its id.
	EnqueuePush(ctx context.Context, variantIDs []snowflake.ID, channelCode string) (string, error)
	// EnqueueProfitRecalc schedules a profitability snapshot refresh.
	EnqueueProfitRecalc(ctx context.Context, variantIDs []snowflake.ID, channelCode string) error
}

// Gateway publishes resolved prices to a marketplace. Implementations own
// every wire-protocol concern.
type Gateway interface {
	PublishPrices(ctx context.Context, channelCode string, items []PushItem) error
}

var ErrEmptyPush = errors.New("empty_push_scope")

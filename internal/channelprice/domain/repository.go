package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Upsert is the write accepted for channel-target pricing.
type Upsert struct {
	VariantID     snowflake.ID
	ChannelID     snowflake.ID
	Price         float64
	DiscountPrice *float64
	CostPrice     *float64
	Currency      string
}

type Repository interface {
	FindByVariants(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID, channelID snowflake.ID) ([]PricingRecord, error)
	Upsert(ctx context.Context, db *gorm.DB, id snowflake.ID, up Upsert) error
	ClearDiscount(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID, channelID snowflake.ID) error
}

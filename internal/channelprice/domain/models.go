// Package domain contains the channel-specific price override models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PricingRecord is the channel-specific override for a (variant, channel)
// pair. The table enforces at most one record per pair; writes are
// upserts. A cleared discount sets discount_price to NULL, the row stays.
type PricingRecord struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	VariantID     snowflake.ID `json:"variant_id" gorm:"not null;uniqueIndex:idx_channel_prices_variant_channel"`
	ChannelID     snowflake.ID `json:"channel_id" gorm:"not null;uniqueIndex:idx_channel_prices_variant_channel"`
	Price         float64      `json:"price" gorm:"not null"`
	DiscountPrice *float64     `json:"discount_price,omitempty" gorm:"type:numeric"`
	CostPrice     *float64     `json:"cost_price,omitempty" gorm:"type:numeric"`
	Currency      string       `json:"currency" gorm:"type:text;not null"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PricingRecord) TableName() string { return "channel_prices" }

// Package domain contains cached profitability snapshots. Snapshots are
// written by the background recalculation job only; live profit reads
// always recompute from source data.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Snapshot is the persisted profitability of a (variant, channel) pair at
// the time of its last price save.
type Snapshot struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	VariantID  snowflake.ID `json:"variant_id" gorm:"not null;uniqueIndex:idx_profit_snapshots_variant_channel"`
	ChannelID  snowflake.ID `json:"channel_id" gorm:"not null;uniqueIndex:idx_profit_snapshots_variant_channel"`
	Revenue    float64      `json:"revenue" gorm:"not null"`
	TotalCosts float64      `json:"total_costs" gorm:"not null"`
	Profit     float64      `json:"profit" gorm:"not null"`
	Margin     float64      `json:"margin" gorm:"not null"`
	ROI        float64      `json:"roi" gorm:"column:roi;not null"`
	Currency   string       `json:"currency" gorm:"type:text;not null"`
	ComputedAt time.Time    `json:"computed_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Snapshot) TableName() string { return "profit_snapshots" }

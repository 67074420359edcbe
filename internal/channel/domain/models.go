// Package domain contains the sales-channel directory models.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/merchantkit/pricora/internal/profit"
)

// Channel is a sales destination profile. Reference data: the pricing
// engine only ever reads it.
type Channel struct {
	ID                 snowflake.ID `json:"id" gorm:"primaryKey"`
	Code               string       `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Marketplace        string       `json:"marketplace" gorm:"type:text;not null"`
	Account            string       `json:"account" gorm:"type:text;not null;default:''"`
	DefaultCurrency    string       `json:"default_currency" gorm:"type:text;not null;default:'USD'"`
	PlatformFeePercent float64      `json:"platform_fee_percent" gorm:"not null;default:0"`
	PaymentFeePercent  float64      `json:"payment_fee_percent" gorm:"not null;default:0"`
	BaseShippingCost   float64      `json:"base_shipping_cost" gorm:"not null;default:0"`
	Active             bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt          time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Channel) TableName() string { return "channels" }

// Profile returns the fee/shipping/currency slice consumed by profit
// computations.
func (c Channel) Profile() profit.ChannelProfile {
	return profit.ChannelProfile{
		Code:               c.Code,
		Currency:           c.DefaultCurrency,
		PlatformFeePercent: c.PlatformFeePercent,
		PaymentFeePercent:  c.PaymentFeePercent,
		ShippingCost:       c.BaseShippingCost,
	}
}

// Fees returns the solver fee context for this channel.
func (c Channel) Fees() profit.FeeContext {
	return c.Profile().Fees()
}

var (
	ErrChannelNotFound = errors.New("channel_not_found")
	ErrInvalidChannel  = errors.New("invalid_channel")
)

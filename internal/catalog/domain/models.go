// Package domain contains the catalog models the pricing engine reads.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Variant is a sellable unit. Catalog management owns creation and
// updates; pricing reads base_price and writes it in base-target mode.
type Variant struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	ProductID     snowflake.ID `json:"product_id" gorm:"column:product_id;not null;index"`
	SKU           string       `json:"sku" gorm:"type:text;not null"`
	Title         string       `json:"title,omitempty" gorm:"type:text"`
	BasePrice     float64      `json:"base_price" gorm:"not null;default:0"`
	DiscountPrice *float64     `json:"discount_price,omitempty" gorm:"type:numeric"`
	Currency      string       `json:"currency" gorm:"type:text;not null;default:'USD'"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Variant) TableName() string { return "variants" }

var (
	ErrVariantNotFound = errors.New("variant_not_found")
	ErrInvalidVariant  = errors.New("invalid_variant")
)

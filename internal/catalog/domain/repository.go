package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// BasePriceUpdate is the write accepted for base-target pricing.
type BasePriceUpdate struct {
	VariantID     snowflake.ID
	Price         float64
	DiscountPrice *float64
}

type Repository interface {
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Variant, error)
	IDsByProduct(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]snowflake.ID, error)
	UpdateBasePrice(ctx context.Context, db *gorm.DB, update BasePriceUpdate) error
	ClearDiscount(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error
}

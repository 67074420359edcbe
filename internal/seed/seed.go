// Package seed bootstraps reference data so a fresh install resolves the
// common marketplaces out of the box.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	catalogdomain "github.com/merchantkit/pricora/internal/catalog/domain"
	channeldomain "github.com/merchantkit/pricora/internal/channel/domain"
	channelpricedomain "github.com/merchantkit/pricora/internal/channelprice/domain"
	profitcachedomain "github.com/merchantkit/pricora/internal/profitcache/domain"
)

// Models lists every persisted model, in dependency order.
func Models() []any {
	return []any{
		&catalogdomain.Variant{},
		&channeldomain.Channel{},
		&channelpricedomain.PricingRecord{},
		&profitcachedomain.Snapshot{},
	}
}

var defaultChannels = []channeldomain.Channel{
	{
		Code:               "amazon_us",
		Marketplace:        "amazon",
		Account:            "us-main",
		DefaultCurrency:    "USD",
		PlatformFeePercent: 15,
		PaymentFeePercent:  0,
		BaseShippingCost:   0,
		Active:             true,
	},
	{
		Code:               "ebay_us",
		Marketplace:        "ebay",
		Account:            "us-main",
		DefaultCurrency:    "USD",
		PlatformFeePercent: 12.9,
		PaymentFeePercent:  0,
		BaseShippingCost:   0,
		Active:             true,
	},
	{
		Code:               "etsy_us",
		Marketplace:        "etsy",
		Account:            "us-main",
		DefaultCurrency:    "USD",
		PlatformFeePercent: 6.5,
		PaymentFeePercent:  3,
		BaseShippingCost:   0,
		Active:             true,
	},
}

// EnsureDefaultChannels inserts the stock channel profiles when their
// codes are absent. Existing rows are never modified, so operator edits
// to fees survive restarts.
func EnsureDefaultChannels(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ch := range defaultChannels {
			var existing channeldomain.Channel
			err := tx.Where("code = ?", ch.Code).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			ch.ID = node.Generate()
			if err := tx.Create(&ch).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

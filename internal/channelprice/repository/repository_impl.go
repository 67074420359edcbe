package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	channelpricedomain "github.com/merchantkit/pricora/internal/channelprice/domain"
)

type repo struct{}

func Provide() channelpricedomain.Repository {
	return &repo{}
}

func (r *repo) FindByVariants(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID, channelID snowflake.ID) ([]channelpricedomain.PricingRecord, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}
	var items []channelpricedomain.PricingRecord
	err := db.WithContext(ctx).Raw(
		`SELECT id, variant_id, channel_id, price, discount_price, cost_price, currency, created_at, updated_at
		 FROM channel_prices WHERE channel_id = ? AND variant_id IN ?`,
		channelID,
		variantIDs,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Upsert keeps the at-most-one-record-per-(variant, channel) invariant:
// the unique index turns a second insert into an update.
func (r *repo) Upsert(ctx context.Context, db *gorm.DB, id snowflake.ID, up channelpricedomain.Upsert) error {
	record := channelpricedomain.PricingRecord{
		ID:            id,
		VariantID:     up.VariantID,
		ChannelID:     up.ChannelID,
		Price:         up.Price,
		DiscountPrice: up.DiscountPrice,
		CostPrice:     up.CostPrice,
		Currency:      up.Currency,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "variant_id"}, {Name: "channel_id"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"price", "discount_price", "cost_price", "currency", "updated_at"},
		),
	}).Create(&record).Error
}

func (r *repo) ClearDiscount(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID, channelID snowflake.ID) error {
	if len(variantIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`UPDATE channel_prices SET discount_price = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE channel_id = ? AND variant_id IN ?`,
		channelID,
		variantIDs,
	).Error
}

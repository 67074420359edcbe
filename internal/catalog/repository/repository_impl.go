package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	catalogdomain "github.com/merchantkit/pricora/internal/catalog/domain"
)

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]catalogdomain.Variant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []catalogdomain.Variant
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, sku, title, base_price, discount_price, currency, created_at, updated_at
		 FROM variants WHERE id IN ? ORDER BY id ASC`,
		ids,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) IDsByProduct(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := db.WithContext(ctx).Raw(
		`SELECT id FROM variants WHERE product_id = ? ORDER BY id ASC`,
		productID,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) UpdateBasePrice(ctx context.Context, db *gorm.DB, update catalogdomain.BasePriceUpdate) error {
	return db.WithContext(ctx).Exec(
		`UPDATE variants SET base_price = ?, discount_price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		update.Price,
		update.DiscountPrice,
		update.VariantID,
	).Error
}

func (r *repo) ClearDiscount(ctx context.Context, db *gorm.DB, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`UPDATE variants SET discount_price = NULL, updated_at = CURRENT_TIMESTAMP WHERE id IN ?`,
		ids,
	).Error
}

package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	channeldomain "github.com/merchantkit/pricora/internal/channel/domain"
)

type repo struct{}

func Provide() channeldomain.Repository {
	return &repo{}
}

const selectColumns = `id, code, marketplace, account, default_currency,
	platform_fee_percent, payment_fee_percent, base_shipping_cost, active,
	created_at, updated_at`

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*channeldomain.Channel, error) {
	var ch channeldomain.Channel
	err := db.WithContext(ctx).Raw(
		`SELECT `+selectColumns+` FROM channels WHERE code = ? AND active = ?`,
		strings.TrimSpace(code), true,
	).Scan(&ch).Error
	if err != nil {
		return nil, err
	}
	if ch.ID == 0 {
		return nil, nil
	}
	return &ch, nil
}

func (r *repo) FindByMarketplace(ctx context.Context, db *gorm.DB, marketplace, account string) (*channeldomain.Channel, error) {
	var ch channeldomain.Channel
	err := db.WithContext(ctx).Raw(
		`SELECT `+selectColumns+` FROM channels WHERE marketplace = ? AND account = ? AND active = ?`,
		strings.TrimSpace(marketplace), strings.TrimSpace(account), true,
	).Scan(&ch).Error
	if err != nil {
		return nil, err
	}
	if ch.ID == 0 {
		return nil, nil
	}
	return &ch, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]channeldomain.Channel, error) {
	var items []channeldomain.Channel
	err := db.WithContext(ctx).Raw(
		`SELECT `+selectColumns+` FROM channels WHERE active = ? ORDER BY code ASC`, true,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

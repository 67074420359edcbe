package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	profitcachedomain "github.com/merchantkit/pricora/internal/profitcache/domain"
)

type repo struct{}

func Provide() profitcachedomain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, snapshot *profitcachedomain.Snapshot) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "variant_id"}, {Name: "channel_id"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"revenue", "total_costs", "profit", "margin", "roi", "currency", "computed_at"},
		),
	}).Create(snapshot).Error
}

package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Channel, error)
	FindByMarketplace(ctx context.Context, db *gorm.DB, marketplace, account string) (*Channel, error)
	List(ctx context.Context, db *gorm.DB) ([]Channel, error)
}

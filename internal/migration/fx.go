package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/merchantkit/pricora/internal/config"
	"github.com/merchantkit/pricora/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// the embedded migrations target postgres; other dialects are
			// for local development and get the schema from the models
			if err := conn.AutoMigrate(seed.Models()...); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultChannels(conn)
	}),
)

package profitcache

import (
	"go.uber.org/fx"

	"github.com/merchantkit/pricora/internal/profitcache/repository"
)

var Module = fx.Module("profitcache",
	fx.Provide(repository.Provide),
)

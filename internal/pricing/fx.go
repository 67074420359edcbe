package pricing

import (
	"go.uber.org/fx"

	"github.com/merchantkit/pricora/internal/pricing/service"
)

var Module = fx.Module("pricing.service",
	fx.Provide(service.New),
)

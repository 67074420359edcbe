package sync

import (
	"go.uber.org/fx"

	"github.com/merchantkit/pricora/internal/sync/service"
)

var Module = fx.Module("sync",
	fx.Provide(service.New),
	fx.Provide(service.NewLogGateway),
)

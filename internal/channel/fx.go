package channel

import (
	"go.uber.org/fx"

	"github.com/merchantkit/pricora/internal/channel/repository"
	"github.com/merchantkit/pricora/internal/channel/service"
)

var Module = fx.Module("channel.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

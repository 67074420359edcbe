package channelprice

import (
	"go.uber.org/fx"

	"github.com/merchantkit/pricora/internal/channelprice/repository"
)

var Module = fx.Module("channelprice",
	fx.Provide(repository.Provide),
)

package catalog

import (
	"go.uber.org/fx"

	"github.com/merchantkit/pricora/internal/catalog/repository"
)

var Module = fx.Module("catalog",
	fx.Provide(repository.Provide),
)

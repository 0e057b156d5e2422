package catalog

import (
	"github.com/lebokota/storefront/internal/catalog/repository"
	"github.com/lebokota/storefront/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

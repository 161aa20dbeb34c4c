package supplier

import (
	"github.com/sitetrack/sitetrack/internal/supplier/repository"
	"github.com/sitetrack/sitetrack/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package material

import (
	"github.com/sitetrack/sitetrack/internal/material/repository"
	"github.com/sitetrack/sitetrack/internal/material/service"
	"go.uber.org/fx"
)

var Module = fx.Module("material.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package project

import (
	"github.com/sitetrack/sitetrack/internal/project/repository"
	"github.com/sitetrack/sitetrack/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package ledger

import (
	"github.com/sitetrack/sitetrack/internal/ledger/repository"
	"github.com/sitetrack/sitetrack/internal/ledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.service",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)

package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/sitetrack/sitetrack/internal/cache"
	"github.com/sitetrack/sitetrack/internal/clock"
	"github.com/sitetrack/sitetrack/internal/config"
	"github.com/sitetrack/sitetrack/internal/migration"
	"github.com/sitetrack/sitetrack/internal/observability"
	"github.com/sitetrack/sitetrack/internal/server"
	"github.com/sitetrack/sitetrack/pkg/db"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,
		cache.Module,
		migration.Module,
		server.Module,
	).Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

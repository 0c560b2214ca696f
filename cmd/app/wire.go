//go:build wireinject
// +build wireinject

package main

import (
	"modelfetch/config"
	"modelfetch/internal/command"
	"modelfetch/internal/cron"
	"modelfetch/internal/database"
	"modelfetch/internal/handler"
	"modelfetch/internal/middleware"
	"modelfetch/internal/router"
	"modelfetch/internal/service"
	"modelfetch/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init command line tools.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(wire.Build(command.ProviderSet))
}

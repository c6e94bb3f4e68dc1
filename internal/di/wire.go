//go:build wireinject
// +build wireinject

package di

import (
	"CalmTrader/pkg/config"
	"CalmTrader/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Session state
		ProvideSessionStore,
		ProvideSessionRegistry,

		// External service clients
		ProvideMarketClient,
		ProvideAdvisor,

		// Use cases and routes
		ProvideCoach,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

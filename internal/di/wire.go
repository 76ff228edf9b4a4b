//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"CycleVis/internal/domain/repository"
	"CycleVis/internal/service/rsiapi"
	"CycleVis/pkg/config"
	"CycleVis/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Upstream and assets
		ProvideRSIClient,
		wire.Bind(new(repository.IndicatorSource), new(*rsiapi.Client)),
		ProvideAssetLoader,

		// Use cases
		ProvideRenderer,
		ProvideDashboard,

		// Transport
		ProvideMountLimiter,
		ProvideWebHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

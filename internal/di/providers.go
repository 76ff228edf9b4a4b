package di

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"CycleVis/internal/chart"
	"CycleVis/internal/domain/repository"
	"CycleVis/internal/handler/web"
	"CycleVis/internal/service/assets"
	"CycleVis/internal/service/ratelimit"
	"CycleVis/internal/service/rsiapi"
	"CycleVis/internal/usecase"
	"CycleVis/pkg/config"
	xhttp "CycleVis/pkg/http"
	"CycleVis/pkg/logger"
	"CycleVis/pkg/metrics"
	"CycleVis/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRegistry creates the Prometheus registry with runtime collectors.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideRSIClient creates the upstream RSI dataset client.
func ProvideRSIClient(cfg *config.Config, l *logger.Logger, m repository.Metrics) *rsiapi.Client {
	return rsiapi.NewClient(cfg.DataSource, l, m)
}

// ProvideRenderer creates the chart renderer for the configured markers.
func ProvideRenderer(cfg *config.Config) *chart.Renderer {
	return chart.NewRenderer(cfg.SpecialSymbols())
}

// ProvideAssetLoader creates the marker image loader over the static dir.
func ProvideAssetLoader(cfg *config.Config, l *logger.Logger, m repository.Metrics) *assets.Loader {
	return assets.NewLoader(os.DirFS(cfg.Assets.StaticDir), cfg.Assets.URLPrefix, cfg.Assets.Markers, l, m)
}

// ProvideDashboard creates the dashboard use case.
func ProvideDashboard(
	source repository.IndicatorSource,
	renderer *chart.Renderer,
	loader *assets.Loader,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.Dashboard {
	return usecase.NewDashboard(source, renderer, loader, m, l)
}

// ProvideMountLimiter creates the per-IP session mount limiter.
func ProvideMountLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Server.MountBurst, cfg.Server.MountRate)
}

// ProvideWebHandler creates the page and live session handler.
func ProvideWebHandler(d *usecase.Dashboard, limiter *ratelimit.Limiter, cfg *config.Config, l *logger.Logger) *web.Handler {
	return web.NewHandler(d, limiter, cfg.Assets, l)
}

// ProvideHTTPServer creates the echo server.
func ProvideHTTPServer(cfg *config.Config, h *web.Handler, l *logger.Logger, reg *prometheus.Registry) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithTrustedProxies(cfg.Server.TrustedProxies),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, reg, reg))
	}
	return xhttp.NewServer(h, l, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	srv *xhttp.Server,
	h *web.Handler,
	source *rsiapi.Client,
) *server.App {
	return server.New(cfg, l, srv, h, source)
}

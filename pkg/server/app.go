package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CycleVis/internal/handler/web"
	"CycleVis/internal/service/rsiapi"
	"CycleVis/pkg/config"
	xhttp "CycleVis/pkg/http"
	applogger "CycleVis/pkg/logger"
)

const janitorInterval = time.Minute

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	web        *web.Handler
	source     *rsiapi.Client
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	webHandler *web.Handler,
	source *rsiapi.Client,
) *App {
	return &App{
		cfg:        cfg,
		logger:     l,
		httpServer: httpServer,
		web:        webHandler,
		source:     source,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx)
}

// Serve starts the HTTP server and blocks until ctx is done, then shuts
// everything down.
func (a *App) Serve(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	go a.web.Janitor(ctx, janitorInterval)
	a.logger.Info("dashboard started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("api_base", a.cfg.DataSource.APIBase),
		applogger.Strings("markers", a.cfg.SpecialSymbols()),
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	// Live sessions hold hijacked connections the HTTP server does not track.
	if err := a.web.Close(ctx); err != nil {
		a.logger.Warn("live sessions did not close in time", applogger.Error(err))
	}

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.source.Close(); err != nil {
		a.logger.Warn("rsi client close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}

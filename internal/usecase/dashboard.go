package usecase

import (
	"context"
	"sync/atomic"

	"CycleVis/internal/chart"
	"CycleVis/internal/domain/repository"
	"CycleVis/internal/service/assets"
	"CycleVis/pkg/logger"
)

// View receives everything a mounted page displays.
type View interface {
	Render(ctx context.Context, cfg *chart.Config) error
	Alert(ctx context.Context, text string) error
}

// Dashboard mounts RSI dashboard sessions. It holds no per-page state.
type Dashboard struct {
	source   repository.IndicatorSource
	renderer *chart.Renderer
	assets   *assets.Loader
	metrics  repository.Metrics
	logger   *logger.Logger
	seq      atomic.Uint64
}

// NewDashboard creates a new Dashboard instance.
func NewDashboard(
	source repository.IndicatorSource,
	renderer *chart.Renderer,
	loader *assets.Loader,
	metrics repository.Metrics,
	log *logger.Logger,
) *Dashboard {
	return &Dashboard{
		source:   source,
		renderer: renderer,
		assets:   loader,
		metrics:  metrics,
		logger:   log,
	}
}

// Mount creates the state of one page. Nothing happens until Run is called.
func (d *Dashboard) Mount(view View) *Session {
	id := d.seq.Add(1)
	return &Session{
		id:      id,
		d:       d,
		view:    view,
		events:  make(chan event, eventBuffer),
		done:    make(chan struct{}),
		markers: d.assets.NewSet(),
		logger:  d.logger.With(logger.Int("session", int(id))),
	}
}

package usecase

import (
	"context"
	"errors"

	"CycleVis/internal/domain/models"
	"CycleVis/internal/service/assets"
	"CycleVis/pkg/logger"
)

const eventBuffer = 16

type eventKind int

const (
	evFetchDone eventKind = iota
	evAssetLoaded
	evFilterChanged
	evPointClicked
)

type event struct {
	kind    eventKind
	records []models.IndicatorResult
	err     error
	symbol  string
	text    string
	index   int
}

// Session is one mounted dashboard page. All page state is owned by the
// goroutine running Run; other goroutines only post events to it.
type Session struct {
	id     uint64
	d      *Dashboard
	view   View
	events chan event
	done   chan struct{}
	logger *logger.Logger

	// owned by Run
	records []models.IndicatorResult
	filter  string
	visible []models.IndicatorResult
	markers *assets.MarkerSet
}

// ID returns the mount sequence number.
func (s *Session) ID() uint64 { return s.id }

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} { return s.done }

// Run renders the empty chart, starts the dataset fetch and marker loads and
// then handles events until ctx is done or the view fails. It returns nil
// when the session ends because ctx was cancelled.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer close(s.done)

	s.d.metrics.SessionOpened()
	defer s.d.metrics.SessionClosed()
	s.logger.Debug("session mounted")

	if err := s.render(ctx); err != nil {
		return err
	}

	go s.fetch(ctx)
	s.d.assets.Load(ctx, s.markers, func(symbol string) {
		s.post(event{kind: evAssetLoaded, symbol: symbol})
	})

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("session closed")
			return nil
		case ev := <-s.events:
			if err := s.handle(ctx, ev); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// SetFilter replaces the filter text. Keystrokes are applied in order.
func (s *Session) SetFilter(text string) {
	s.post(event{kind: evFilterChanged, text: text})
}

// Click reports a click on the point at index of the currently shown chart.
func (s *Session) Click(index int) {
	s.post(event{kind: evPointClicked, index: index})
}

// post hands ev to the loop. Events sent after the session ended are dropped.
func (s *Session) post(ev event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Session) fetch(ctx context.Context) {
	records, err := s.d.source.FetchRSI(ctx)
	s.post(event{kind: evFetchDone, records: records, err: err})
}

func (s *Session) handle(ctx context.Context, ev event) error {
	switch ev.kind {
	case evFetchDone:
		if ev.err != nil {
			if !errors.Is(ev.err, context.Canceled) {
				s.logger.Error("failed to fetch rsi dataset", logger.Error(ev.err))
			}
			return nil
		}
		s.records = ev.records
		return s.render(ctx)

	case evAssetLoaded:
		s.logger.Debug("marker ready", logger.String("symbol", ev.symbol))
		return s.render(ctx)

	case evFilterChanged:
		s.filter = ev.text
		return s.render(ctx)

	case evPointClicked:
		detail, ok := s.d.renderer.Click(s.visible, ev.index)
		if !ok {
			s.logger.Warn("click outside dataset",
				logger.Int("index", ev.index),
				logger.Int("points", len(s.visible)),
			)
			return nil
		}
		return s.view.Alert(ctx, detail.Text())
	}
	return nil
}

func (s *Session) render(ctx context.Context) error {
	s.visible = models.Filter(s.records, s.filter)
	cfg := s.d.renderer.Build(s.visible, s.markers)
	s.d.metrics.RecordRender(len(s.visible))
	return s.view.Render(ctx, cfg)
}


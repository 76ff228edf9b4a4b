package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"sync/atomic"
	"time"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"CycleVis/internal/domain/repository"
	"CycleVis/pkg/config"
	"CycleVis/pkg/logger"
)

var ErrUnsupported = errors.New("unsupported marker image")

type handle struct {
	url    string
	loaded atomic.Bool
}

// MarkerSet holds the marker images of one page mount. The set of symbols is
// fixed at creation; only the loaded flags change.
type MarkerSet struct {
	handles map[string]*handle
}

// Image returns the marker URL for symbol if its image has finished loading.
func (s *MarkerSet) Image(symbol string) (string, bool) {
	if s == nil {
		return "", false
	}
	h, ok := s.handles[symbol]
	if !ok || !h.loaded.Load() {
		return "", false
	}
	return h.url, true
}

// Loaded reports how many marker images are ready.
func (s *MarkerSet) Loaded() int {
	n := 0
	for _, h := range s.handles {
		if h.loaded.Load() {
			n++
		}
	}
	return n
}

type Loader struct {
	fsys      fs.FS
	urlPrefix string
	markers   []config.Marker
	logger    *logger.Logger
	metrics   repository.Metrics
}

func NewLoader(fsys fs.FS, urlPrefix string, markers []config.Marker, log *logger.Logger, m repository.Metrics) *Loader {
	return &Loader{
		fsys:      fsys,
		urlPrefix: urlPrefix,
		markers:   markers,
		logger:    log,
		metrics:   m,
	}
}

// NewSet returns an empty marker set for one page mount.
func (l *Loader) NewSet() *MarkerSet {
	s := &MarkerSet{handles: make(map[string]*handle, len(l.markers))}
	for _, m := range l.markers {
		s.handles[m.Symbol] = &handle{url: path.Join(l.urlPrefix, m.File)}
	}
	return s
}

// Load starts one load per configured marker and returns immediately.
// onLoad is called once for every image that loads successfully before ctx
// is done. Failed images are never retried.
func (l *Loader) Load(ctx context.Context, set *MarkerSet, onLoad func(symbol string)) {
	for _, m := range l.markers {
		h, ok := set.handles[m.Symbol]
		if !ok {
			continue
		}
		go l.load(ctx, m, h, onLoad)
	}
}

func (l *Loader) load(ctx context.Context, m config.Marker, h *handle, onLoad func(string)) {
	start := time.Now()
	if err := l.check(m.File); err != nil {
		l.metrics.RecordAssetLoad(m.Symbol, "error")
		l.logger.Debug("marker image unavailable",
			logger.String("symbol", m.Symbol),
			logger.String("file", m.File),
			logger.Error(err),
		)
		return
	}
	if ctx.Err() != nil {
		return
	}

	h.loaded.Store(true)
	l.metrics.RecordAssetLoad(m.Symbol, "ok")
	l.logger.Debug("marker image loaded",
		logger.String("symbol", m.Symbol),
		logger.Duration("took", time.Since(start)),
	)
	if onLoad != nil {
		onLoad(m.Symbol)
	}
}

// check verifies that file exists and holds a decodable image.
func (l *Loader) check(file string) error {
	b, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	mt := mimetype.Detect(b)
	if isSVG(mt, b) {
		return nil
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(b)); err != nil {
		return fmt.Errorf("%w: %s (%s)", ErrUnsupported, file, mt.String())
	}
	return nil
}

// isSVG accepts documents sniffed as SVG and XML documents whose root is svg.
func isSVG(mt *mimetype.MIME, b []byte) bool {
	if mt.Is("image/svg+xml") {
		return true
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/xml") || m.Is("text/plain") {
			return bytes.Contains(b, []byte("<svg"))
		}
	}
	return false
}

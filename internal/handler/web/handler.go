package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"CycleVis/internal/service/ratelimit"
	"CycleVis/internal/usecase"
	"CycleVis/pkg/config"
	xhttp "CycleVis/pkg/http"
	"CycleVis/pkg/logger"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Page is the data rendered into the page shell.
type Page struct {
	Brand       string
	Title       string
	SocketPath  string
	Placeholder string
}

// Handler serves the dashboard page, its static assets and live sessions.
type Handler struct {
	dashboard *usecase.Dashboard
	limiter   *ratelimit.Limiter
	assets    config.AssetsConfig
	logger    *logger.Logger
	upgrader  websocket.Upgrader

	active  atomic.Int64
	mu      sync.Mutex
	closed  bool
	closing chan struct{}
	wg      sync.WaitGroup
}

func NewHandler(d *usecase.Dashboard, limiter *ratelimit.Limiter, assets config.AssetsConfig, log *logger.Logger) *Handler {
	return &Handler{
		dashboard: d,
		limiter:   limiter,
		assets:    assets,
		logger:    log.With(logger.String("component", "web")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 8192,
		},
		closing: make(chan struct{}),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/ws", h.Live)
	e.GET("/healthz", h.Health)
	e.Static(h.assets.URLPrefix, h.assets.StaticDir)
}

// Index renders the page shell. The chart itself is painted by the browser.
func (h *Handler) Index(c echo.Context) error {
	var buf bytes.Buffer
	err := indexTmpl.Execute(&buf, Page{
		Brand:       "CYCLESTUDY",
		Title:       "RSI",
		SocketPath:  "/ws",
		Placeholder: "Search symbol...",
	})
	if err != nil {
		h.logger.Error("render index", logger.Error(err))
		return xhttp.InternalError("page unavailable").WithError(err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// Health reports liveness and the number of mounted sessions.
func (h *Handler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, xhttp.HealthStatus{
		Status:   "ok",
		Sessions: int(h.active.Load()),
	})
}

// Live mounts one dashboard session on a websocket. Each mount costs an
// upstream fetch so mounts are rate limited per client IP.
func (h *Handler) Live(c echo.Context) error {
	if !h.enter() {
		return xhttp.ServiceUnavailableError("server is shutting down")
	}
	defer h.wg.Done()

	ip := c.RealIP()
	if !h.limiter.Allow(ip) {
		h.logger.Warn("session mount rate limited", logger.String("ip", ip))
		return xhttp.TooManyRequestsError("too many sessions, retry later")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already answered the request
		h.logger.Debug("websocket upgrade failed", logger.Error(err))
		return nil
	}
	defer conn.Close()

	h.active.Add(1)
	defer h.active.Add(-1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-h.closing:
			cancel()
		case <-ctx.Done():
		}
	}()

	view := &socketView{conn: conn}
	sess := h.dashboard.Mount(view)
	log := h.logger.With(logger.Int("session", int(sess.ID())), logger.String("ip", ip))

	go func() {
		readLoop(ctx, conn, sess, log)
		cancel()
	}()
	go view.pingLoop(ctx)

	if err := sess.Run(ctx); err != nil {
		log.Debug("session ended", logger.Error(err))
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
	return nil
}

// Janitor drops idle rate limiter buckets until ctx is done.
func (h *Handler) Janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := h.limiter.Prune(); n > 0 {
				h.logger.Debug("pruned rate limiter", logger.Int("keys", n))
			}
		}
	}
}

// enter registers a mount unless Close has been called.
func (h *Handler) enter() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.wg.Add(1)
	return true
}

// Close rejects new mounts, ends every live session and waits for them to
// finish or for ctx.
func (h *Handler) Close(ctx context.Context) error {
	h.mu.Lock()
	if !h.closed {
		h.closed = true
		close(h.closing)
	}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ActiveSessions returns the number of mounted sessions.
func (h *Handler) ActiveSessions() int {
	return int(h.active.Load())
}

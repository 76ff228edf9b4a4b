package web

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"CycleVis/internal/chart"
	"CycleVis/internal/domain/models"
	"CycleVis/internal/usecase"
	xhttp "CycleVis/pkg/http"
	"CycleVis/pkg/logger"
)

const (
	writeWait    = 5 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	maxFrameSize = 4096
)

const (
	FrameChart = "chart"
	FrameAlert = "alert"
)

// ServerFrame is a message pushed to the browser.
type ServerFrame struct {
	Type  string        `json:"type"`
	Chart *chart.Config `json:"chart,omitempty"`
	Text  string        `json:"text,omitempty"`
}

// socketView paints a session onto one websocket connection. Writes are
// serialized because the ping loop and the session loop share the conn.
type socketView struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

var _ usecase.View = (*socketView)(nil)

func (v *socketView) Render(_ context.Context, cfg *chart.Config) error {
	return v.write(ServerFrame{Type: FrameChart, Chart: cfg})
}

func (v *socketView) Alert(_ context.Context, text string) error {
	return v.write(ServerFrame{Type: FrameAlert, Text: text})
}

func (v *socketView) write(f ServerFrame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return v.conn.WriteMessage(websocket.TextMessage, b)
}

func (v *socketView) ping() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (v *socketView) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := v.ping(); err != nil {
				return
			}
		}
	}
}

// readLoop forwards browser frames to the session until the socket fails.
// Invalid frames are logged and skipped.
func readLoop(ctx context.Context, conn *websocket.Conn, sess *usecase.Session, log *logger.Logger) {
	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			if !errors.As(err, &ce) && ctx.Err() == nil {
				log.Debug("socket read ended", logger.Error(err))
			}
			return
		}

		var f models.ClientFrame
		if err := json.Unmarshal(b, &f); err != nil {
			log.Warn("malformed socket frame", logger.Error(err))
			continue
		}
		if verrs := xhttp.Validate(ctx, &f); verrs != nil {
			log.Warn("invalid socket frame",
				logger.String("type", f.Type),
				logger.String("reason", verrs[0].Message),
			)
			continue
		}

		switch f.Type {
		case models.FrameFilter:
			sess.SetFilter(f.Text)
		case models.FrameClick:
			sess.Click(f.Index)
		}
	}
}

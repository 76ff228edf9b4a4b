package rsiapi

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CycleVis/pkg/config"
	"CycleVis/pkg/logger"
	"CycleVis/pkg/metrics"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(config.DataSourceConfig{
		APIBase: srv.URL,
		Path:    "/api/rsi",
		Timeout: 2 * time.Second,
	}, logger.NewNop(), metrics.New(prometheus.NewRegistry()))
	t.Cleanup(func() { _ = c.Close() })
	return c, &hits
}

func TestFetchRSI_Success(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/rsi", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"symbol":"BTCUSDT","value":25.5,"category":"oversold"},
			{"symbol":"SOLUSDT","value":72,"category":"overbought"},
			{"symbol":"XRPUSDT","value":null,"category":"neutral"}
		]`))
	})

	records, err := c.FetchRSI(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "BTCUSDT", records[0].Symbol)
	assert.Equal(t, 25.5, records[0].Value)
	assert.Equal(t, "overbought", records[1].Category)
	assert.True(t, math.IsNaN(records[2].Value))
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestFetchRSI_EmptyArray(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	records, err := c.FetchRSI(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFetchRSI_Failures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind Kind
		wantCode int
	}{
		{
			name:     "server error",
			handler:  func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantKind: KindServer,
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "not found",
			handler:  func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			wantKind: KindClient,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "malformed body",
			handler:  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"symbol":`)) },
			wantKind: KindDecode,
		},
		{
			name:     "object instead of array",
			handler:  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"symbol":"BTCUSDT"}`)) },
			wantKind: KindDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, hits := newTestClient(t, tt.handler)

			records, err := c.FetchRSI(context.Background())
			require.Error(t, err)
			assert.Nil(t, records)

			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantKind, fe.Kind)
			assert.Equal(t, tt.wantCode, fe.StatusCode)
			assert.Equal(t, tt.wantKind, KindOf(err))
			assert.Equal(t, int32(1), atomic.LoadInt32(hits), "must not retry")
		})
	}
}

func TestFetchRSI_CanceledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchRSI(ctx)
	require.Error(t, err)
	assert.Equal(t, KindCanceled, KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchRSI_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(config.DataSourceConfig{APIBase: base, Path: "/api/rsi", Timeout: time.Second},
		logger.NewNop(), metrics.New(prometheus.NewRegistry()))

	_, err := c.FetchRSI(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestKindOf_Foreign(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(assert.AnError))
}

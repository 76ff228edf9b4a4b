package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stdout"})
	assert.Error(t, err)
}

func TestNew_EmptyOutput(t *testing.T) {
	_, err := New(&Config{Level: "info"})
	assert.Error(t, err)
}

func TestLogger_FileOutputIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(&Config{Level: "debug", Format: "console", Output: path, MaxSizeMB: 1})
	require.NoError(t, err)

	l.With(String("session", "s-1")).Error("fetch failed",
		Error(errors.New("connection refused")),
		Int("points", 2),
		Float("value", 25.5),
		Duration("elapsed", 1500*time.Millisecond),
		Strings("symbols", []string{"BTCUSDT", "ETHUSDT"}),
		Bool("loaded", true),
	)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(b))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "fetch failed", entry["message"])
	assert.Equal(t, "s-1", entry["session"])
	assert.Equal(t, "connection refused", entry["error"])
	assert.Equal(t, float64(2), entry["points"])
	assert.Equal(t, 25.5, entry["value"])
	assert.Equal(t, float64(1500), entry["elapsed"])
	assert.Equal(t, "BTCUSDT, ETHUSDT", entry["symbols"])
	assert.Equal(t, true, entry["loaded"])
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Info("discarded", String("k", "v"))
		l.Error("discarded", Error(nil))
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, "/api/rsi", c.DataSource.Path)
	assert.Equal(t, "./static", c.Assets.StaticDir)
	assert.Equal(t, DefaultMarkers, c.Assets.Markers)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, c.SpecialSymbols())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9000
data_source:
  api_base: https://api.example.com
  timeout: 3s
assets:
  markers:
    - symbol: SOLUSDT
      file: sol.png
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9000, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, "https://api.example.com", c.DataSource.APIBase)
	assert.Equal(t, 3*time.Second, c.DataSource.Timeout)
	assert.Equal(t, []string{"SOLUSDT"}, c.SpecialSymbols())
	assert.NoError(t, c.Validate())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadWithEnv_Overrides(t *testing.T) {
	t.Setenv("API_BASE", "http://rsi.internal:3000")
	t.Setenv("PORT", "8181")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STATIC_DIR", "/srv/static")

	c, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://rsi.internal:3000", c.DataSource.APIBase)
	assert.Equal(t, 8181, c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "/srv/static", c.Assets.StaticDir)
}

func TestLoadWithEnv_BadPort(t *testing.T) {
	t.Setenv("API_BASE", "http://localhost:3000")
	t.Setenv("PORT", "eighty")

	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing api base", mutate: func(c *Config) { c.DataSource.APIBase = "" }, wantErr: true},
		{name: "api base not a url", mutate: func(c *Config) { c.DataSource.APIBase = "not a url" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "marker without file", mutate: func(c *Config) { c.Assets.Markers = []Marker{{Symbol: "BTCUSDT"}} }, wantErr: true},
		{name: "trusted proxy cidr", mutate: func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.0/8"} }},
		{name: "trusted proxy not a cidr", mutate: func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.1"} }, wantErr: true},
		{name: "unknown environment", mutate: func(c *Config) { c.Environment = "qa" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			c.DataSource.APIBase = "http://localhost:3000"
			tt.mutate(c)

			err = c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Marker binds a special symbol to the image file drawn as its chart marker.
type Marker struct {
	Symbol string `yaml:"symbol" validate:"required"`
	File   string `yaml:"file" validate:"required"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	CORS            bool          `yaml:"cors" default:"true"`
	// Token bucket applied per client IP to live session mounts.
	MountBurst int     `yaml:"mount_burst" default:"10" validate:"gte=1"`
	MountRate  float64 `yaml:"mount_rate" default:"1" validate:"gt=0"`

	// CIDRs of reverse proxies whose X-Forwarded-For is trusted. Empty means
	// the peer address is the client IP.
	TrustedProxies []string `yaml:"trusted_proxies" validate:"dive,cidr"`
}

type LogConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error fatal panic"`
	Format     string `yaml:"format" default:"console" validate:"oneof=console json"`
	Output     string `yaml:"output" default:"stdout" validate:"required"`
	MaxSizeMB  int    `yaml:"max_size_mb" default:"50"`
	MaxBackups int    `yaml:"max_backups" default:"3"`
	MaxAgeDays int    `yaml:"max_age_days" default:"7"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics" validate:"startswith=/"`
}

type DataSourceConfig struct {
	APIBase string        `yaml:"api_base" validate:"required,url"`
	Path    string        `yaml:"path" default:"/api/rsi" validate:"startswith=/"`
	Timeout time.Duration `yaml:"timeout" default:"15s"`
}

type AssetsConfig struct {
	StaticDir string   `yaml:"static_dir" default:"./static" validate:"required"`
	URLPrefix string   `yaml:"url_prefix" default:"/static" validate:"startswith=/"`
	Markers   []Marker `yaml:"markers" validate:"dive"`
}

type Config struct {
	Environment string           `yaml:"environment" default:"development" validate:"oneof=development staging production"`
	Server      ServerConfig     `yaml:"server"`
	Log         LogConfig        `yaml:"log"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	DataSource  DataSourceConfig `yaml:"data_source"`
	Assets      AssetsConfig     `yaml:"assets"`
}

// DefaultMarkers are the two special symbols drawn with image markers.
var DefaultMarkers = []Marker{
	{Symbol: "BTCUSDT", File: "btc.png"},
	{Symbol: "ETHUSDT", File: "eth.svg"},
}

var validate = validator.New()

// Load reads and parses a YAML configuration file. A missing file is not an
// error: defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if len(c.Assets.Markers) == 0 {
		c.Assets.Markers = append([]Marker(nil), DefaultMarkers...)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// Variables from a .env file in the working directory are loaded first; they
// never replace variables already set in the process environment.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("API_BASE"); v != "" {
		c.DataSource.APIBase = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.Assets.StaticDir = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%s failed on '%s'", verrs[0].Namespace(), verrs[0].Tag())
		}
		return err
	}
	return nil
}

// SpecialSymbols returns the symbols configured with an image marker.
func (c *Config) SpecialSymbols() []string {
	out := make([]string, 0, len(c.Assets.Markers))
	for _, m := range c.Assets.Markers {
		out = append(out, m.Symbol)
	}
	return out
}

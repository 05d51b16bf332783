package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/airboard/airboard/internal/dataset"
	"github.com/airboard/airboard/pkg/types"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort       = 8080
	DefaultStreamInterval = 5 * time.Second
)

// Config holds the configuration parsed from the `server:` section of
// config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API and WebSocket hub listen on (default 8080).
	HTTPPort int `yaml:"http_port"`

	// Auth configures how incoming HTTP and WebSocket clients authenticate.
	Auth AuthConfig `yaml:"auth"`

	// Dataset names the on-disk table loaded once at startup.
	Dataset DatasetConfig `yaml:"dataset"`

	// Dashboard holds presentation-layer tunables. These apply live on
	// config reload.
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// AuthConfig controls client authentication.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the
	// expected API key. Used when Mode == "apikey".
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header name to read the key from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// DatasetConfig names the input table and its columns.
type DatasetConfig struct {
	// Path is the CSV or XLSX file holding the observation table. Required.
	Path string `yaml:"path"`

	// Sheet selects the worksheet for XLSX input. Empty = first sheet.
	Sheet string `yaml:"sheet"`

	// Column names; defaults match the source dataset (timestamp, station,
	// PM2.5).
	TimestampColumn string `yaml:"timestamp_column"`
	StationColumn   string `yaml:"station_column"`
	PM25Column      string `yaml:"pm25_column"`

	// TimestampLayout is the Go time layout of the timestamp column.
	// Default: "2006-01-02 15:04:05".
	TimestampLayout string `yaml:"timestamp_layout"`
}

// Options converts the config into loader options.
func (d DatasetConfig) Options() dataset.Options {
	return dataset.Options{
		TimestampColumn: d.TimestampColumn,
		StationColumn:   d.StationColumn,
		PM25Column:      d.PM25Column,
		TimestampLayout: d.TimestampLayout,
		Sheet:           d.Sheet,
	}
}

// DashboardConfig holds the presentation tunables.
type DashboardConfig struct {
	// TopStations is the station-count cap for the ranking view (default 5).
	TopStations int `yaml:"top_stations"`

	// StreamInterval is how often the WebSocket hub broadcasts the current
	// snapshot (default 5s).
	StreamInterval time.Duration `yaml:"stream_interval"`
}

// Load reads and parses the config file at path. Missing fields are filled
// with sensible defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			Dashboard: DashboardConfig{
				TopStations:    types.DefaultTopStations,
				StreamInterval: DefaultStreamInterval,
			},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}
	if cfg.Server.Dataset.Path == "" {
		return fmt.Errorf("server.dataset.path is required")
	}
	if cfg.Server.Dashboard.TopStations <= 0 {
		return fmt.Errorf("server.dashboard.top_stations must be positive")
	}
	if cfg.Server.Dashboard.StreamInterval <= 0 {
		return fmt.Errorf("server.dashboard.stream_interval must be positive")
	}
	return nil
}

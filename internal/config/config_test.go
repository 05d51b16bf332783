package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfig writes content to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  dataset:
    path: data/observations.csv
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.HTTPPort != DefaultHTTPPort {
		t.Errorf("HTTPPort = %d, want %d", cfg.Server.HTTPPort, DefaultHTTPPort)
	}
	if cfg.Server.Dashboard.TopStations != 5 {
		t.Errorf("TopStations = %d, want 5", cfg.Server.Dashboard.TopStations)
	}
	if cfg.Server.Dashboard.StreamInterval != DefaultStreamInterval {
		t.Errorf("StreamInterval = %v, want %v", cfg.Server.Dashboard.StreamInterval, DefaultStreamInterval)
	}
	if got := cfg.Server.Auth.EffectiveHeader(); got != "x-api-key" {
		t.Errorf("EffectiveHeader = %q, want x-api-key", got)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  http_port: 9090
  auth:
    mode: apikey
    key_env: AIRBOARD_API_KEY
    header: x-airboard-key
  dataset:
    path: data/beijing.xlsx
    sheet: observations
    pm25_column: pm25
    timestamp_layout: "2006-01-02T15:04:05"
  dashboard:
    top_stations: 10
    stream_interval: 30s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.HTTPPort != 9090 {
		t.Errorf("HTTPPort = %d, want 9090", cfg.Server.HTTPPort)
	}
	if cfg.Server.Auth.Mode != "apikey" || cfg.Server.Auth.EffectiveHeader() != "x-airboard-key" {
		t.Errorf("Auth = %+v", cfg.Server.Auth)
	}
	if cfg.Server.Dataset.Sheet != "observations" {
		t.Errorf("Sheet = %q", cfg.Server.Dataset.Sheet)
	}
	opts := cfg.Server.Dataset.Options()
	if opts.PM25Column != "pm25" {
		t.Errorf("Options().PM25Column = %q, want pm25", opts.PM25Column)
	}
	if cfg.Server.Dashboard.TopStations != 10 {
		t.Errorf("TopStations = %d, want 10", cfg.Server.Dashboard.TopStations)
	}
	if cfg.Server.Dashboard.StreamInterval != 30*time.Second {
		t.Errorf("StreamInterval = %v, want 30s", cfg.Server.Dashboard.StreamInterval)
	}
}

func TestLoad_AuthKeyFromEnv(t *testing.T) {
	t.Setenv("AIRBOARD_TEST_KEY", "s3cret")
	a := AuthConfig{Mode: "apikey", KeyEnv: "AIRBOARD_TEST_KEY"}
	if got := a.Key(); got != "s3cret" {
		t.Errorf("Key = %q, want s3cret", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing dataset path", "server:\n  http_port: 8080\n"},
		{"bad port", "server:\n  http_port: 70000\n  dataset: {path: x.csv}\n"},
		{"bad auth mode", "server:\n  auth: {mode: oauth}\n  dataset: {path: x.csv}\n"},
		{"negative top stations", "server:\n  dataset: {path: x.csv}\n  dashboard: {top_stations: -1}\n"},
		{"not yaml", "{{{"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.yaml)); err == nil {
				t.Error("Load: want error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load on missing file: want error, got nil")
	}
}

// Package config loads the server configuration from the `server:` section
// of config.yaml.
//
// Config fields:
//   - HTTPPort              — port for the REST API and WebSocket hub (default 8080)
//   - Auth.Mode             — "apikey" or "none"
//   - Auth.KeyEnv           — environment variable holding the expected API key
//   - Auth.Header           — header name carrying the key (default "x-api-key")
//   - Dataset.Path          — the columnar table to load at startup (required)
//   - Dataset.*Column       — column names (defaults: timestamp/station/PM2.5)
//   - Dashboard.TopStations — ranking cap (default 5)
//   - Dashboard.StreamInterval — WebSocket broadcast interval (default 5s)
//
// Load(path) applies defaults before unmarshalling, then validates.
// Watch(ctx, path, onChange) hot-reloads the file on write; the server
// applies dashboard settings live, while port and dataset changes require
// a restart.
package config

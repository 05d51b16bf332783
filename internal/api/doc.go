// Package api implements the HTTP REST API for airboard-server.
//
// New(table, settings) returns an http.Handler that serves:
//
//	GET /api/v1/health         — service liveness + dataset row/station counts
//	GET /api/v1/stats          — total observations, stations, time range
//	GET /api/v1/trends         — yearly/hourly/weekday/seasonal mean PM2.5
//	GET /api/v1/stations/top   — top-N stations by mean PM2.5 (?n= override)
//	GET /api/v1/stations/trend — per-station annual mean series (?stations=)
//	GET /api/v1/categories     — daily health-category distribution + legend
//	GET /api/v1/diagnostics    — data-quality hints about the loaded table
//	GET /api/v1/snapshot       — all views in one payload (also the WS body)
//
// All endpoints:
//   - Respond with Content-Type: application/json
//   - Return 405 for non-GET methods
//   - Accept ?year_min=&year_max=&stations= to filter before aggregation;
//     a filter matching nothing yields empty views, never an error
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api

// Package compute implements the air-quality summary pipeline.
//
// derive.go provides the pure feature deriver: SeasonOf and CategoryOf are
// single, total classification functions (every month maps to exactly one
// season; every non-missing PM2.5 value maps to exactly one category), and
// Derive enriches a raw observation with its calendar fields.
//
// aggregate.go provides the reductions the dashboard views consume: mean
// PM2.5 by year/hour/weekday/season, the top-N station ranking, per-station
// annual trends, and the daily health-category distribution.
//
// filter.go provides the optional pre-aggregation filter (year range +
// station subset) added by the interactive dashboard variant.
//
// All functions are pure and deterministic. Empty input is never an error:
// every aggregation returns empty slices or zero counts so the UI can render
// zero-data charts, and rows with a missing PM2.5 value are excluded from
// every mean.
package compute

package api

import (
	"github.com/airboard/airboard/internal/compute"
	"github.com/airboard/airboard/internal/store"
	"github.com/airboard/airboard/pkg/types"
)

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"`
	Observations int    `json:"observations"`
	Stations     int    `json:"stations"`
}

// StatsResponse is the payload for GET /api/v1/stats — the dashboard
// sidebar numbers.
type StatsResponse struct {
	Observations int    `json:"observations"`
	Stations     int    `json:"stations"`
	Start        string `json:"start,omitempty"` // yyyy-mm-dd
	End          string `json:"end,omitempty"`   // yyyy-mm-dd
	YearMin      int    `json:"year_min"`
	YearMax      int    `json:"year_max"`
	Missing      int    `json:"missing"`
}

// TrendsResponse is the payload for GET /api/v1/trends — the four temporal
// trend charts. Buckets with no observations are omitted, not zero-filled.
type TrendsResponse struct {
	Yearly   []compute.YearMean    `json:"yearly"`
	Hourly   []compute.HourMean    `json:"hourly"`
	Weekday  []compute.WeekdayMean `json:"weekday"`
	Seasonal []compute.SeasonMean  `json:"seasonal"`
}

// RankingResponse is the payload for GET /api/v1/stations/top.
type RankingResponse struct {
	Stations []compute.StationMean `json:"stations"`
	Cap      int                   `json:"cap"`
}

// StationTrendResponse is the payload for GET /api/v1/stations/trend.
type StationTrendResponse struct {
	Series map[string][]compute.YearMean `json:"series"`
}

// LegendEntry describes one health category for chart legends: its color
// and its inclusive upper PM2.5 bound (absent for the open-ended worst
// category).
type LegendEntry struct {
	Category types.Category `json:"category"`
	Color    string         `json:"color"`
	MaxPM25  *float64       `json:"max_pm25,omitempty"`
}

// CategoriesResponse is the payload for GET /api/v1/categories. Counts
// include every category, zeros included, so pie charts keep stable slices.
type CategoriesResponse struct {
	Distribution map[types.Category]int `json:"distribution"`
	Legend       []LegendEntry          `json:"legend"`
}

// SnapshotResponse is the payload for GET /api/v1/snapshot and the body of
// every WebSocket broadcast: all dashboard views in one message.
type SnapshotResponse struct {
	Stats       StatsResponse      `json:"stats"`
	Trends      TrendsResponse     `json:"trends"`
	TopStations RankingResponse    `json:"top_stations"`
	Categories  CategoriesResponse `json:"categories"`
	GeneratedAt string             `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// toStatsResponse maps store stats to their JSON representation.
func toStatsResponse(s store.Stats) StatsResponse {
	out := StatsResponse{
		Observations: s.Observations,
		Stations:     s.Stations,
		YearMin:      s.YearMin,
		YearMax:      s.YearMax,
		Missing:      s.Missing,
	}
	if !s.Start.IsZero() {
		out.Start = s.Start.Format("2006-01-02")
		out.End = s.End.Format("2006-01-02")
	}
	return out
}

// legend returns the fixed category legend.
func legend() []LegendEntry {
	bounds := map[types.Category]float64{
		types.CategoryGood:      types.BoundGood,
		types.CategoryModerate:  types.BoundModerate,
		types.CategoryUnhealthy: types.BoundUnhealthy,
	}
	out := make([]LegendEntry, 0, len(types.Categories))
	for _, c := range types.Categories {
		e := LegendEntry{Category: c, Color: types.CategoryColors[c]}
		if b, ok := bounds[c]; ok {
			bound := b
			e.MaxPM25 = &bound
		}
		out = append(out, e)
	}
	return out
}

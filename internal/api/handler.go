package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/airboard/airboard/internal/compute"
	"github.com/airboard/airboard/internal/store"
	"github.com/airboard/airboard/pkg/types"
)

// Settings holds the presentation tunables the handler reads per request.
// They can be swapped live on config reload via UpdateSettings.
type Settings struct {
	// TopStations is the default ranking cap when ?n= is absent.
	TopStations int
}

// Handler is the HTTP handler for all /api/v1/* endpoints. It reads the
// immutable observation table and computes the requested views on demand.
type Handler struct {
	table    *store.Table
	settings atomic.Pointer[Settings]
	mux      *http.ServeMux
}

// New creates a Handler over the given table and registers all routes.
func New(table *store.Table, settings Settings) *Handler {
	h := &Handler{table: table, mux: http.NewServeMux()}
	h.settings.Store(&settings)

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/stats", h.stats)
	h.mux.HandleFunc("/api/v1/trends", h.trends)
	h.mux.HandleFunc("/api/v1/stations/top", h.topStations)
	h.mux.HandleFunc("/api/v1/stations/trend", h.stationTrend)
	h.mux.HandleFunc("/api/v1/categories", h.categories)
	h.mux.HandleFunc("/api/v1/diagnostics", h.diagnostics)
	h.mux.HandleFunc("/api/v1/snapshot", h.snapshot)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// UpdateSettings swaps the presentation tunables. Safe to call while
// requests are in flight.
func (h *Handler) UpdateSettings(s Settings) {
	h.settings.Store(&s)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health — service liveness and dataset size.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s := h.table.Stats()
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		Observations: s.Observations,
		Stations:     s.Stations,
	})
}

// stats returns GET /api/v1/stats — the dashboard sidebar numbers.
// Stats describe the full loaded dataset; filter params are ignored here.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, toStatsResponse(h.table.Stats()))
}

// trends returns GET /api/v1/trends — the four temporal trend series.
func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rows, err := h.filteredRows(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, buildTrends(rows))
}

// topStations returns GET /api/v1/stations/top — the ranking view.
// ?n= overrides the configured cap.
func (h *Handler) topStations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rows, err := h.filteredRows(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	n := h.settings.Load().TopStations
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			jsonErr(w, http.StatusBadRequest, fmt.Sprintf("invalid n %q", raw))
			return
		}
		n = v
	}

	top := compute.TopStationsByMean(rows, n)
	if top == nil {
		top = []compute.StationMean{}
	}
	jsonResp(w, http.StatusOK, RankingResponse{Stations: top, Cap: n})
}

// stationTrend returns GET /api/v1/stations/trend — per-station annual mean
// series for trend-line plotting. ?stations= selects the set; absent means
// every station in the table.
func (h *Handler) stationTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rows, err := h.filteredRows(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	stations := splitParam(r.URL.Query().Get("stations"))
	if len(stations) == 0 {
		stations = h.table.Stations()
	}
	jsonResp(w, http.StatusOK, StationTrendResponse{
		Series: compute.AnnualTrend(rows, stations),
	})
}

// categories returns GET /api/v1/categories — the daily category
// distribution plus the fixed legend.
func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rows, err := h.filteredRows(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, CategoriesResponse{
		Distribution: compute.DailyCategoryDistribution(rows),
		Legend:       legend(),
	})
}

// diagnostics returns GET /api/v1/diagnostics — data-quality hints.
func (h *Handler) diagnostics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, computeDiagnostics(h.table))
}

// snapshot returns GET /api/v1/snapshot — every view in one payload.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rows, err := h.filteredRows(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResp(w, http.StatusOK, h.buildSnapshot(rows))
}

// BuildSnapshot computes the full, unfiltered snapshot payload. The
// WebSocket hub broadcasts this on every tick.
func (h *Handler) BuildSnapshot() SnapshotResponse {
	return h.buildSnapshot(h.table.Rows())
}

func (h *Handler) buildSnapshot(rows []types.EnrichedObservation) SnapshotResponse {
	n := h.settings.Load().TopStations
	top := compute.TopStationsByMean(rows, n)
	if top == nil {
		top = []compute.StationMean{}
	}
	return SnapshotResponse{
		Stats:  toStatsResponse(h.table.Stats()),
		Trends: buildTrends(rows),
		TopStations: RankingResponse{
			Stations: top,
			Cap:      n,
		},
		Categories: CategoriesResponse{
			Distribution: compute.DailyCategoryDistribution(rows),
			Legend:       legend(),
		},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// --- helpers ----------------------------------------------------------------

// filteredRows parses the filter query params and applies them to the table.
func (h *Handler) filteredRows(r *http.Request) ([]types.EnrichedObservation, error) {
	f, err := parseFilter(r)
	if err != nil {
		return nil, err
	}
	return h.table.Filtered(f), nil
}

// parseFilter reads ?year_min=&year_max=&stations= into a compute.Filter.
// Absent params leave the corresponding dimension unrestricted.
func parseFilter(r *http.Request) (compute.Filter, error) {
	var f compute.Filter
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"year_min", &f.YearMin},
		{"year_max", &f.YearMax},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return compute.Filter{}, fmt.Errorf("invalid %s %q", p.name, raw)
		}
		*p.dst = v
	}
	if f.YearMin != 0 && f.YearMax != 0 && f.YearMin > f.YearMax {
		return compute.Filter{}, fmt.Errorf("year_min %d exceeds year_max %d", f.YearMin, f.YearMax)
	}

	f.Stations = splitParam(q.Get("stations"))
	return f, nil
}

// splitParam splits a comma-separated query value, dropping empty parts.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func buildTrends(rows []types.EnrichedObservation) TrendsResponse {
	return TrendsResponse{
		Yearly:   compute.MeanByYear(rows),
		Hourly:   compute.MeanByHour(rows),
		Weekday:  compute.MeanByDayOfWeek(rows),
		Seasonal: compute.MeanBySeason(rows),
	}
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

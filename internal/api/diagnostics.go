package api

import (
	"fmt"
	"sort"

	"github.com/airboard/airboard/internal/store"
)

// DiagnosticHint is one human-readable insight about the loaded dataset.
// The UI displays these as chips next to the sidebar; clicking one shows
// Detail — written in plain English for non-specialist readers.
type DiagnosticHint struct {
	// Key is a stable machine-readable identifier (used for dedup/ordering).
	Key string `json:"key"`
	// Level is "ok" | "info" | "warning" | "critical"
	Level string `json:"level"`
	// Title is a short label shown on the chip.
	Title string `json:"title"`
	// Detail is the full explanation shown on click/hover.
	Detail string `json:"detail"`
	// Value is an optional numeric value associated with this hint (e.g. a percentage).
	Value *float64 `json:"value,omitempty"`
}

// Missing-share thresholds for the data-quality hints, in percent.
const (
	missingWarnPct    = 20.0
	missingStationPct = 30.0
)

// sparseStationRows is the observation count below which a station is
// flagged as too sparse to chart meaningfully.
const sparseStationRows = 100

// computeDiagnostics derives data-quality hints from the loaded table.
// Hints are ordered: critical first, then warnings, then info.
func computeDiagnostics(table *store.Table) []DiagnosticHint {
	var hints []DiagnosticHint

	stats := table.Stats()
	if stats.Observations == 0 {
		hints = append(hints, DiagnosticHint{
			Key:   "no_data",
			Level: "critical",
			Title: "No data loaded",
			Detail: "The observation table is empty. Every chart will render " +
				"without data. Check that the configured dataset path points at " +
				"the aggregated air-quality table and that it has rows.",
		})
		return hints // nothing else to diagnose
	}

	// ── Overall missing share ────────────────────────────────────────────────
	missingPct := float64(stats.Missing) / float64(stats.Observations) * 100
	if missingPct > 0 {
		v := missingPct
		level := "info"
		if missingPct >= missingWarnPct {
			level = "warning"
		}
		hints = append(hints, DiagnosticHint{
			Key:   "missing_share",
			Level: level,
			Title: fmt.Sprintf("%.1f%% readings missing", missingPct),
			Detail: fmt.Sprintf(
				"%d of %d observations have no PM2.5 value. Missing readings are "+
					"excluded from every mean, so the charts stay correct, but a large "+
					"share means some hours and days are represented by very few "+
					"samples. This usually traces back to sensor outages at the "+
					"monitoring stations.",
				stats.Missing, stats.Observations,
			),
			Value: &v,
		})
	}

	// ── Per-station coverage ─────────────────────────────────────────────────
	type coverage struct {
		total, missing int
	}
	perStation := make(map[string]*coverage)
	for _, r := range table.Rows() {
		c := perStation[r.Station]
		if c == nil {
			c = &coverage{}
			perStation[r.Station] = c
		}
		c.total++
		if !r.HasPM25() {
			c.missing++
		}
	}

	stations := table.Stations() // sorted, so hint order is deterministic
	for _, st := range stations {
		c := perStation[st]
		pct := float64(c.missing) / float64(c.total) * 100
		if pct >= missingStationPct {
			v := pct
			hints = append(hints, DiagnosticHint{
				Key:   "station_gaps_" + st,
				Level: "warning",
				Title: fmt.Sprintf("%s: %.0f%% gaps", st, pct),
				Detail: fmt.Sprintf(
					"Station %s is missing PM2.5 for %.1f%% of its %d observations. "+
						"Its means and its share of the category distribution are built "+
						"from the remaining readings, which may not cover every hour "+
						"evenly. Treat this station's ranking position with care.",
					st, pct, c.total,
				),
				Value: &v,
			})
		}
		if c.total < sparseStationRows {
			hints = append(hints, DiagnosticHint{
				Key:   "station_sparse_" + st,
				Level: "info",
				Title: fmt.Sprintf("%s: sparse series", st),
				Detail: fmt.Sprintf(
					"Station %s has only %d observations in the loaded range. "+
						"Trend lines for it will look jagged and its daily category "+
						"counts carry little weight next to fully-covered stations.",
					st, c.total,
				),
			})
		}
	}

	// ── All clear ────────────────────────────────────────────────────────────
	if len(hints) == 0 {
		hints = append(hints, DiagnosticHint{
			Key:   "complete",
			Level: "ok",
			Title: "Dataset complete",
			Detail: fmt.Sprintf(
				"All %d observations across %d stations carry a PM2.5 value. "+
					"Every view is computed from full coverage.",
				stats.Observations, stats.Stations,
			),
		})
	}

	sortHints(hints)
	return hints
}

// sortHints orders hints critical → warning → info → ok, stable within a
// level.
func sortHints(hints []DiagnosticHint) {
	rank := map[string]int{"critical": 0, "warning": 1, "info": 2, "ok": 3}
	sort.SliceStable(hints, func(i, j int) bool {
		return rank[hints[i].Level] < rank[hints[j].Level]
	})
}

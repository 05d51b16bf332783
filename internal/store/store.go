package store

import (
	"sort"
	"time"

	"github.com/airboard/airboard/internal/compute"
	"github.com/airboard/airboard/pkg/types"
)

// Stats summarizes the loaded dataset for the dashboard sidebar.
type Stats struct {
	Observations int       `json:"observations"`
	Stations     int       `json:"stations"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	YearMin      int       `json:"year_min"`
	YearMax      int       `json:"year_max"`

	// Missing is the number of rows without a PM2.5 reading.
	Missing int `json:"missing"`
}

// Table is the immutable enriched observation table. Build it once with
// New; all accessors are safe for concurrent use because nothing mutates
// after construction.
type Table struct {
	rows     []types.EnrichedObservation
	stations []string // sorted unique station names
	stats    Stats
}

// New enriches obs and builds the table. It fails if any row is
// structurally invalid — the pipeline either loads completely or not at all.
func New(obs []types.Observation) (*Table, error) {
	rows, err := compute.DeriveAll(obs)
	if err != nil {
		return nil, err
	}
	return FromRows(rows), nil
}

// FromRows builds a table from already-enriched rows. Callers must not
// modify rows afterwards.
func FromRows(rows []types.EnrichedObservation) *Table {
	t := &Table{rows: rows}

	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.Station] {
			seen[r.Station] = true
			t.stations = append(t.stations, r.Station)
		}
		if !r.HasPM25() {
			t.stats.Missing++
		}
		if t.stats.Start.IsZero() || r.Timestamp.Before(t.stats.Start) {
			t.stats.Start = r.Timestamp
		}
		if r.Timestamp.After(t.stats.End) {
			t.stats.End = r.Timestamp
		}
	}
	sort.Strings(t.stations)

	t.stats.Observations = len(rows)
	t.stats.Stations = len(t.stations)
	if len(rows) > 0 {
		t.stats.YearMin = t.stats.Start.Year()
		t.stats.YearMax = t.stats.End.Year()
	}
	return t
}

// Rows returns the enriched table. Callers must treat it as read-only.
func (t *Table) Rows() []types.EnrichedObservation { return t.rows }

// Filtered returns the rows retained by f.
func (t *Table) Filtered(f compute.Filter) []types.EnrichedObservation {
	return f.Apply(t.rows)
}

// Stations returns the sorted unique station names. Read-only.
func (t *Table) Stations() []string { return t.stations }

// Stats returns the dataset summary.
func (t *Table) Stats() Stats { return t.stats }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

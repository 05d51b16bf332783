package compute

import "github.com/airboard/airboard/pkg/types"

// Filter restricts the enriched table before aggregation. The zero value
// covers the full dataset: a zero year bound means unbounded on that side,
// and an empty Stations list retains every station.
type Filter struct {
	// YearMin and YearMax are an inclusive year range. Zero = unbounded.
	YearMin int `json:"year_min,omitempty"`
	YearMax int `json:"year_max,omitempty"`

	// Stations is the set of station identifiers to retain. Empty = all.
	Stations []string `json:"stations,omitempty"`
}

// IsZero reports whether the filter retains the full dataset.
func (f Filter) IsZero() bool {
	return f.YearMin == 0 && f.YearMax == 0 && len(f.Stations) == 0
}

// Apply returns the rows matching the filter. The result may be empty;
// every aggregation in this package accepts an empty input and returns
// empty results, so a filter that matches nothing still renders.
func (f Filter) Apply(rows []types.EnrichedObservation) []types.EnrichedObservation {
	if f.IsZero() {
		return rows
	}

	var keep map[string]bool
	if len(f.Stations) > 0 {
		keep = make(map[string]bool, len(f.Stations))
		for _, s := range f.Stations {
			keep[s] = true
		}
	}

	out := make([]types.EnrichedObservation, 0, len(rows))
	for _, r := range rows {
		if f.YearMin != 0 && r.Year < f.YearMin {
			continue
		}
		if f.YearMax != 0 && r.Year > f.YearMax {
			continue
		}
		if keep != nil && !keep[r.Station] {
			continue
		}
		out = append(out, r)
	}
	return out
}

package compute

import (
	"sort"

	"github.com/airboard/airboard/pkg/types"
)

// YearMean is the mean PM2.5 over one calendar year.
type YearMean struct {
	Year int     `json:"year"`
	Mean float64 `json:"mean"`
}

// HourMean is the mean PM2.5 over one hour of day (0–23).
type HourMean struct {
	Hour int     `json:"hour"`
	Mean float64 `json:"mean"`
}

// WeekdayMean is the mean PM2.5 over one day of week (0–6, Monday=0).
type WeekdayMean struct {
	Weekday int     `json:"weekday"`
	Mean    float64 `json:"mean"`
}

// SeasonMean is the mean PM2.5 over one season.
type SeasonMean struct {
	Season types.Season `json:"season"`
	Mean   float64      `json:"mean"`
}

// StationMean is the mean PM2.5 over one station's full series.
type StationMean struct {
	Station string  `json:"station"`
	Mean    float64 `json:"mean"`
}

// acc accumulates a running mean. Rows with missing PM2.5 never reach it.
type acc struct {
	sum float64
	n   int
}

func (a acc) mean() float64 { return a.sum / float64(a.n) }

// accBy groups the non-missing PM2.5 values of rows by key.
func accBy[K comparable](rows []types.EnrichedObservation, key func(types.EnrichedObservation) K) map[K]acc {
	groups := make(map[K]acc)
	for _, r := range rows {
		if !r.HasPM25() {
			continue
		}
		k := key(r)
		a := groups[k]
		a.sum += r.PM25
		a.n++
		groups[k] = a
	}
	return groups
}

// MeanByYear returns the yearly mean PM2.5, sorted by year ascending.
// Years with no non-missing observations are omitted, not zero-filled.
func MeanByYear(rows []types.EnrichedObservation) []YearMean {
	groups := accBy(rows, func(r types.EnrichedObservation) int { return r.Year })
	out := make([]YearMean, 0, len(groups))
	for y, a := range groups {
		out = append(out, YearMean{Year: y, Mean: a.mean()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// MeanByHour returns the hourly mean PM2.5 for hours 0–23 in increasing
// order. Hours with no observations are omitted.
func MeanByHour(rows []types.EnrichedObservation) []HourMean {
	groups := accBy(rows, func(r types.EnrichedObservation) int { return r.Hour })
	out := make([]HourMean, 0, len(groups))
	for h, a := range groups {
		out = append(out, HourMean{Hour: h, Mean: a.mean()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// MeanByDayOfWeek returns the weekday mean PM2.5, Monday=0 first.
func MeanByDayOfWeek(rows []types.EnrichedObservation) []WeekdayMean {
	groups := accBy(rows, func(r types.EnrichedObservation) int { return r.DayOfWeek })
	out := make([]WeekdayMean, 0, len(groups))
	for d, a := range groups {
		out = append(out, WeekdayMean{Weekday: d, Mean: a.mean()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out
}

// MeanBySeason returns the seasonal mean PM2.5 in the fixed display order
// Spring, Summer, Autumn, Winter. A season absent from the data is omitted
// entirely so the UI can tell "no data" apart from "average zero".
func MeanBySeason(rows []types.EnrichedObservation) []SeasonMean {
	groups := accBy(rows, func(r types.EnrichedObservation) types.Season { return r.Season })
	out := make([]SeasonMean, 0, len(groups))
	for _, s := range types.Seasons {
		if a, ok := groups[s]; ok {
			out = append(out, SeasonMean{Season: s, Mean: a.mean()})
		}
	}
	return out
}

// TopStationsByMean returns the n stations with the highest mean PM2.5,
// sorted descending by mean; exact ties are broken by station name
// ascending so the ranking is deterministic. Returns fewer than n entries
// if fewer stations exist, and nil when n <= 0.
func TopStationsByMean(rows []types.EnrichedObservation, n int) []StationMean {
	if n <= 0 {
		return nil
	}
	groups := accBy(rows, func(r types.EnrichedObservation) string { return r.Station })
	out := make([]StationMean, 0, len(groups))
	for st, a := range groups {
		out = append(out, StationMean{Station: st, Mean: a.mean()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Station < out[j].Station
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// AnnualTrend returns, for each station in stations, its yearly mean PM2.5
// series sorted by year ascending. Stations with no data in rows map to no
// entry. Used for trend-line plotting.
func AnnualTrend(rows []types.EnrichedObservation, stations []string) map[string][]YearMean {
	want := make(map[string]bool, len(stations))
	for _, s := range stations {
		want[s] = true
	}

	type key struct {
		station string
		year    int
	}
	groups := accBy(rows, func(r types.EnrichedObservation) key {
		return key{station: r.Station, year: r.Year}
	})

	out := make(map[string][]YearMean)
	for k, a := range groups {
		if !want[k.station] {
			continue
		}
		out[k.station] = append(out[k.station], YearMean{Year: k.year, Mean: a.mean()})
	}
	for _, series := range out {
		sort.Slice(series, func(i, j int) bool { return series[i].Year < series[j].Year })
	}
	return out
}

// DailyCategoryDistribution reduces rows to one mean PM2.5 per
// (station, calendar date) pair, classifies each daily mean with CategoryOf,
// and counts days per category. All four categories are present in the
// result, including zero counts, so pie-chart legends stay stable.
//
// Days where a station has only missing readings contribute nothing.
func DailyCategoryDistribution(rows []types.EnrichedObservation) map[types.Category]int {
	type key struct {
		station string
		date    string // yyyy-mm-dd of the stored timestamp
	}
	groups := accBy(rows, func(r types.EnrichedObservation) key {
		return key{station: r.Station, date: r.Timestamp.Format("2006-01-02")}
	})

	out := make(map[types.Category]int, len(types.Categories))
	for _, c := range types.Categories {
		out[c] = 0
	}
	for _, a := range groups {
		out[CategoryOf(a.mean())]++
	}
	return out
}

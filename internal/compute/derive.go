package compute

import (
	"fmt"

	"github.com/airboard/airboard/pkg/types"
)

// SeasonOf maps a calendar month (1–12) to its meteorological season:
// {12,1,2}→Winter, {3,4,5}→Spring, {6,7,8}→Summer, {9,10,11}→Autumn.
// The partition is total over 1–12; months outside that range return "".
func SeasonOf(month int) types.Season {
	switch month {
	case 12, 1, 2:
		return types.SeasonWinter
	case 3, 4, 5:
		return types.SeasonSpring
	case 6, 7, 8:
		return types.SeasonSummer
	case 9, 10, 11:
		return types.SeasonAutumn
	default:
		return ""
	}
}

// CategoryOf maps a PM2.5 concentration (µg/m³) to its health category.
// Boundaries are inclusive on the lower category: 15 is Good, 25 is
// Moderate, 150 is Unhealthy.
//
// This is the single boundary function used both per-observation at load
// time and per-daily-mean in DailyCategoryDistribution, so the two views
// can never disagree on a boundary value.
func CategoryOf(pm25 float64) types.Category {
	switch {
	case pm25 <= types.BoundGood:
		return types.CategoryGood
	case pm25 <= types.BoundModerate:
		return types.CategoryModerate
	case pm25 <= types.BoundUnhealthy:
		return types.CategoryUnhealthy
	default:
		return types.CategoryVeryUnhealthy
	}
}

// Derive enriches an observation with its calendar fields and health
// category. Calendar fields are read straight off the stored timestamp —
// no timezone conversion is applied. Day-of-week is Monday=0.
//
// A zero timestamp or empty station is a structural defect in the source
// table and returns ErrInvalidInput. A missing PM2.5 value is not an
// error: it propagates as NaN with an empty category.
func Derive(o types.Observation) (types.EnrichedObservation, error) {
	if o.Timestamp.IsZero() {
		return types.EnrichedObservation{}, fmt.Errorf("derive: observation has no timestamp: %w", types.ErrInvalidInput)
	}
	if o.Station == "" {
		return types.EnrichedObservation{}, fmt.Errorf("derive: observation has no station: %w", types.ErrInvalidInput)
	}

	month := int(o.Timestamp.Month())
	e := types.EnrichedObservation{
		Observation: o,
		Year:        o.Timestamp.Year(),
		Month:       month,
		Hour:        o.Timestamp.Hour(),
		DayOfWeek:   (int(o.Timestamp.Weekday()) + 6) % 7, // time.Weekday has Sunday=0
		Season:      SeasonOf(month),
	}
	if o.HasPM25() {
		e.Category = CategoryOf(o.PM25)
	}
	return e, nil
}

// DeriveAll enriches a whole table, failing on the first structurally
// invalid row. Either every row enriches or the pipeline does not proceed.
func DeriveAll(obs []types.Observation) ([]types.EnrichedObservation, error) {
	out := make([]types.EnrichedObservation, 0, len(obs))
	for i, o := range obs {
		e, err := Derive(o)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

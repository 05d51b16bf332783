package types

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidInput is returned when a required field (timestamp, station,
// PM2.5 column) is structurally absent or unparseable. A missing PM2.5
// *value* on an otherwise well-formed row is not an error — it is carried
// as NaN and excluded from downstream means.
var ErrInvalidInput = errors.New("invalid input")

// Season is a fixed three-month grouping of calendar months (meteorological).
type Season string

// The four seasons, in dashboard display order.
const (
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
	SeasonWinter Season = "Winter"
)

// Seasons is the fixed display order used by the seasonal trend view.
var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// Category is a four-level health classification of a PM2.5 concentration.
type Category string

// Health categories, ordered from best to worst air quality.
const (
	CategoryGood          Category = "Good"
	CategoryModerate      Category = "Moderate"
	CategoryUnhealthy     Category = "Unhealthy"
	CategoryVeryUnhealthy Category = "Very Unhealthy"
)

// Categories is the fixed display order used by the distribution view.
var Categories = []Category{
	CategoryGood,
	CategoryModerate,
	CategoryUnhealthy,
	CategoryVeryUnhealthy,
}

// Upper PM2.5 bounds (µg/m³) for each category, inclusive on the lower
// category. Values above BoundUnhealthy are Very Unhealthy.
const (
	BoundGood      = 15.0
	BoundModerate  = 25.0
	BoundUnhealthy = 150.0
)

// CategoryColors maps each category to the legend color the UI renders.
var CategoryColors = map[Category]string{
	CategoryGood:          "green",
	CategoryModerate:      "yellow",
	CategoryUnhealthy:     "red",
	CategoryVeryUnhealthy: "black",
}

// DefaultTopStations is the station-count cap for the ranking view.
const DefaultTopStations = 5

// Observation is one pollutant reading at one station. (Timestamp, Station)
// is the natural key. PM25 is NaN when the reading is missing.
type Observation struct {
	Timestamp time.Time
	Station   string
	PM25      float64
}

// HasPM25 reports whether the reading carries a PM2.5 value.
func (o Observation) HasPM25() bool { return !math.IsNaN(o.PM25) }

// EnrichedObservation is an Observation plus the calendar-derived fields and
// health category the aggregations group by. Fields are set once at load
// time and never mutated.
type EnrichedObservation struct {
	Observation

	Year      int // calendar year of the timestamp
	Month     int // 1–12
	Hour      int // 0–23
	DayOfWeek int // 0–6, Monday = 0
	Season    Season

	// Category classifies PM25; empty when the reading is missing.
	Category Category
}

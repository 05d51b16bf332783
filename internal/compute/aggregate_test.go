package compute

import (
	"math"
	"testing"
	"time"

	"github.com/airboard/airboard/pkg/types"
)

// obs builds an enriched observation for tests, going through Derive so the
// derived fields always match what the loader would produce.
func obs(t *testing.T, station, ts string, pm25 float64) types.EnrichedObservation {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", ts)
	if err != nil {
		t.Fatalf("parse %q: %v", ts, err)
	}
	e, err := Derive(types.Observation{Timestamp: parsed, Station: station, PM25: pm25})
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	return e
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMeanByYear_SortedNoDuplicates(t *testing.T) {
	rows := []types.EnrichedObservation{
		obs(t, "Dongsi", "2015-06-01 10:00", 30),
		obs(t, "Dongsi", "2013-06-01 10:00", 10),
		obs(t, "Dongsi", "2013-06-02 10:00", 20),
		obs(t, "Dongsi", "2014-06-01 10:00", 40),
	}

	got := MeanByYear(rows)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantYears := []int{2013, 2014, 2015}
	wantMeans := []float64{15, 40, 30}
	for i := range got {
		if got[i].Year != wantYears[i] || !almostEqual(got[i].Mean, wantMeans[i]) {
			t.Errorf("[%d] = {%d %.2f}, want {%d %.2f}",
				i, got[i].Year, got[i].Mean, wantYears[i], wantMeans[i])
		}
	}
}

func TestMeanByYear_SkipsMissing(t *testing.T) {
	rows := []types.EnrichedObservation{
		obs(t, "Dongsi", "2013-06-01 10:00", 10),
		obs(t, "Dongsi", "2013-06-01 11:00", math.NaN()),
	}
	got := MeanByYear(rows)
	if len(got) != 1 || !almostEqual(got[0].Mean, 10) {
		t.Fatalf("got %+v, want single entry with mean 10", got)
	}
}

func TestMeanByHour_OmitsEmptyHours(t *testing.T) {
	rows := []types.EnrichedObservation{
		obs(t, "Dongsi", "2013-06-01 23:00", 40),
		obs(t, "Dongsi", "2013-06-01 05:00", 10),
		obs(t, "Dongsi", "2013-06-02 05:00", 20),
	}
	got := MeanByHour(rows)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (empty hours omitted, not zero-filled)", len(got))
	}
	if got[0].Hour != 5 || !almostEqual(got[0].Mean, 15) {
		t.Errorf("[0] = %+v, want hour 5 mean 15", got[0])
	}
	if got[1].Hour != 23 || !almostEqual(got[1].Mean, 40) {
		t.Errorf("[1] = %+v, want hour 23 mean 40", got[1])
	}
}

func TestMeanByDayOfWeek_MondayFirst(t *testing.T) {
	rows := []types.EnrichedObservation{
		obs(t, "Dongsi", "2014-01-05 10:00", 70), // Sunday
		obs(t, "Dongsi", "2014-01-06 10:00", 10), // Monday
	}
	got := MeanByDayOfWeek(rows)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Weekday != 0 || !almostEqual(got[0].Mean, 10) {
		t.Errorf("[0] = %+v, want weekday 0 mean 10", got[0])
	}
	if got[1].Weekday != 6 || !almostEqual(got[1].Mean, 70) {
		t.Errorf("[1] = %+v, want weekday 6 mean 70", got[1])
	}
}

func TestMeanBySeason_DisplayOrderAbsentOmitted(t *testing.T) {
	// Only Winter and Summer data; fixed order is Spring, Summer, Autumn,
	// Winter, so Summer must come first.
	rows := []types.EnrichedObservation{
		obs(t, "Dongsi", "2014-01-10 10:00", 80), // Winter
		obs(t, "Dongsi", "2014-07-10 10:00", 20), // Summer
	}
	got := MeanBySeason(rows)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Season != types.SeasonSummer || !almostEqual(got[0].Mean, 20) {
		t.Errorf("[0] = %+v, want Summer mean 20", got[0])
	}
	if got[1].Season != types.SeasonWinter || !almostEqual(got[1].Mean, 80) {
		t.Errorf("[1] = %+v, want Winter mean 80", got[1])
	}
}

func TestTopStationsByMean(t *testing.T) {
	rows := []types.EnrichedObservation{
		obs(t, "A", "2014-01-01 10:00", 40),
		obs(t, "A", "2014-01-02 10:00", 60), // A mean 50
		obs(t, "B", "2014-01-01 10:00", 80), // B mean 80
		obs(t, "C", "2014-01-01 10:00", 10), // C mean 10
	}

	got := TopStationsByMean(rows, 1)
	if len(got) != 1 || got[0].Station != "B" || !almostEqual(got[0].Mean, 80) {
		t.Fatalf("top 1 = %+v, want [{B 80}]", got)
	}

	got = TopStationsByMean(rows, 5)
	if len(got) != 3 {
		t.Fatalf("top 5 over 3 stations: len = %d, want 3", len(got))
	}
	for i, want := range []string{"B", "A", "C"} {
		if got[i].Station != want {
			t.Errorf("[%d].Station = %q, want %q", i, got[i].Station, want)
		}
	}
}

func TestTopStationsByMean_TieBrokenByName(t *testing.T) {
	rows := []types.EnrichedObservation{
		obs(t, "Wanliu", "2014-01-01 10:00", 50),
		obs(t, "Aotizhongxin", "2014-01-01 10:00", 50),
	}
	got := TopStationsByMean(rows, 2)
	if len(got) != 2 || got[0].Station != "Aotizhongxin" || got[1].Station != "Wanliu" {
		t.Fatalf("tie order = %+v, want lexicographically earlier name first", got)
	}
}

func TestTopStationsByMean_NonPositiveN(t *testing.T) {
	rows := []types.EnrichedObservation{obs(t, "A", "2014-01-01 10:00", 50)}
	if got := TopStationsByMean(rows, 0); got != nil {
		t.Errorf("n=0: got %+v, want nil", got)
	}
}

func TestAnnualTrend_RestrictedToStationSet(t *testing.T) {
	rows := []types.EnrichedObservation{
		obs(t, "A", "2013-01-01 10:00", 10),
		obs(t, "A", "2014-01-01 10:00", 20),
		obs(t, "B", "2013-01-01 10:00", 99),
	}
	got := AnnualTrend(rows, []string{"A"})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (B excluded)", len(got))
	}
	series := got["A"]
	if len(series) != 2 || series[0].Year != 2013 || series[1].Year != 2014 {
		t.Fatalf("series = %+v, want years 2013, 2014 ascending", series)
	}
	if !almostEqual(series[0].Mean, 10) || !almostEqual(series[1].Mean, 20) {
		t.Errorf("series means = %+v, want 10 then 20", series)
	}
}

func TestDailyCategoryDistribution(t *testing.T) {
	// Dongsi on 2014-01-01 has readings 10, 20, 30 at three hours: the
	// daily mean is 20, which is Moderate.
	rows := []types.EnrichedObservation{
		obs(t, "Dongsi", "2014-01-01 08:00", 10),
		obs(t, "Dongsi", "2014-01-01 12:00", 20),
		obs(t, "Dongsi", "2014-01-01 18:00", 30),
	}
	got := DailyCategoryDistribution(rows)

	if len(got) != 4 {
		t.Fatalf("len = %d, want all 4 categories including zero counts", len(got))
	}
	if got[types.CategoryModerate] != 1 {
		t.Errorf("Moderate = %d, want 1", got[types.CategoryModerate])
	}
	for _, c := range []types.Category{types.CategoryGood, types.CategoryUnhealthy, types.CategoryVeryUnhealthy} {
		if got[c] != 0 {
			t.Errorf("%s = %d, want 0", c, got[c])
		}
	}
}

func TestDailyCategoryDistribution_CountsSumToStationDays(t *testing.T) {
	rows := []types.EnrichedObservation{
		obs(t, "A", "2014-01-01 08:00", 10),
		obs(t, "A", "2014-01-01 12:00", 12),
		obs(t, "A", "2014-01-02 08:00", 200),
		obs(t, "B", "2014-01-01 08:00", 50),
		obs(t, "B", "2014-01-03 08:00", math.NaN()), // all-missing day does not count
	}
	got := DailyCategoryDistribution(rows)

	total := 0
	for _, n := range got {
		total += n
	}
	// Distinct (station, date) pairs with at least one reading:
	// (A, 01-01), (A, 01-02), (B, 01-01).
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestAggregations_EmptyInput(t *testing.T) {
	var rows []types.EnrichedObservation

	if got := MeanByYear(rows); len(got) != 0 {
		t.Errorf("MeanByYear: got %+v, want empty", got)
	}
	if got := MeanByHour(rows); len(got) != 0 {
		t.Errorf("MeanByHour: got %+v, want empty", got)
	}
	if got := MeanByDayOfWeek(rows); len(got) != 0 {
		t.Errorf("MeanByDayOfWeek: got %+v, want empty", got)
	}
	if got := MeanBySeason(rows); len(got) != 0 {
		t.Errorf("MeanBySeason: got %+v, want empty", got)
	}
	if got := TopStationsByMean(rows, 5); len(got) != 0 {
		t.Errorf("TopStationsByMean: got %+v, want empty", got)
	}
	if got := AnnualTrend(rows, []string{"A"}); len(got) != 0 {
		t.Errorf("AnnualTrend: got %+v, want empty", got)
	}
	// Even with no rows, the distribution carries all four categories so
	// pie-chart legends stay stable.
	dist := DailyCategoryDistribution(rows)
	if len(dist) != 4 {
		t.Fatalf("DailyCategoryDistribution: len = %d, want 4", len(dist))
	}
	for _, c := range types.Categories {
		if n, ok := dist[c]; !ok || n != 0 {
			t.Errorf("DailyCategoryDistribution[%s] = %d (present=%v), want 0", c, n, ok)
		}
	}
}

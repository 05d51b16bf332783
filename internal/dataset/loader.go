package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/airboard/airboard/pkg/types"
)

// Default column names and timestamp layout of the source table.
const (
	DefaultTimestampColumn = "timestamp"
	DefaultStationColumn   = "station"
	DefaultPM25Column      = "PM2.5"
	DefaultTimestampLayout = "2006-01-02 15:04:05"
)

// Options names the columns of the on-disk table. Zero values fall back to
// the defaults above.
type Options struct {
	TimestampColumn string
	StationColumn   string
	PM25Column      string
	TimestampLayout string

	// Sheet selects the worksheet for XLSX input. Empty = first sheet.
	Sheet string
}

func (o Options) withDefaults() Options {
	if o.TimestampColumn == "" {
		o.TimestampColumn = DefaultTimestampColumn
	}
	if o.StationColumn == "" {
		o.StationColumn = DefaultStationColumn
	}
	if o.PM25Column == "" {
		o.PM25Column = DefaultPM25Column
	}
	if o.TimestampLayout == "" {
		o.TimestampLayout = DefaultTimestampLayout
	}
	return o
}

// Load reads the table at path, dispatching on the file extension:
// .xlsx goes through excelize, everything else is treated as CSV.
func Load(path string, opts Options) ([]types.Observation, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path, opts)
	}
	return LoadCSV(path, opts)
}

// LoadCSV reads a CSV table from path.
func LoadCSV(path string, opts Options) ([]types.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f, opts)
}

// ReadCSV parses a CSV table from r.
func ReadCSV(r io.Reader, opts Options) ([]types.Observation, error) {
	opts = opts.withDefaults()

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			opts.TimestampColumn: series.String,
			opts.StationColumn:   series.String,
			opts.PM25Column:      series.Float,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("dataset: parse csv: %w", df.Err)
	}
	return fromDataFrame(df, opts)
}

// LoadXLSX reads a spreadsheet export of the table. The rows are converted
// into a dataframe so CSV and XLSX input share one validation path.
func LoadXLSX(path string, opts Options) ([]types.Observation, error) {
	opts = opts.withDefaults()

	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open xlsx %q: %w", path, err)
	}
	defer x.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = x.GetSheetName(0)
	}
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("dataset: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset: sheet %q is empty: %w", sheet, types.ErrInvalidInput)
	}

	// excelize trims trailing empty cells, so pad every row to the header
	// width before handing the records to gota.
	width := len(rows[0])
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row[:width]
	}

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			opts.TimestampColumn: series.String,
			opts.StationColumn:   series.String,
			opts.PM25Column:      series.Float,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("dataset: convert sheet %q: %w", sheet, df.Err)
	}
	return fromDataFrame(df, opts)
}

// fromDataFrame validates the required columns and converts the frame into
// observations. PM2.5 comes out of the float series with NaN for missing
// cells, which is exactly the in-memory missing-value representation.
func fromDataFrame(df dataframe.DataFrame, opts Options) ([]types.Observation, error) {
	for _, col := range []string{opts.TimestampColumn, opts.StationColumn, opts.PM25Column} {
		if !hasColumn(df, col) {
			return nil, fmt.Errorf("dataset: missing required column %q: %w", col, types.ErrInvalidInput)
		}
	}

	timestamps := df.Col(opts.TimestampColumn).Records()
	stations := df.Col(opts.StationColumn).Records()
	pm25s := df.Col(opts.PM25Column).Float()

	out := make([]types.Observation, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		ts, err := time.Parse(opts.TimestampLayout, timestamps[i])
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: bad timestamp %q: %w", i, timestamps[i], types.ErrInvalidInput)
		}
		station := strings.TrimSpace(stations[i])
		if station == "" || station == "NaN" {
			return nil, fmt.Errorf("dataset: row %d: missing station: %w", i, types.ErrInvalidInput)
		}
		out = append(out, types.Observation{
			Timestamp: ts,
			Station:   station,
			PM25:      pm25s[i],
		})
	}
	return out, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

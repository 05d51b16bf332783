// Package dataset loads the pre-aggregated air-quality table from disk.
//
// The table is columnar with at minimum a timestamp column, a station
// identifier column, and a nullable PM2.5 column; extra pollutant columns
// are ignored. CSV files are parsed through go-gota dataframes (missing
// values become NaN), and XLSX exports of the same table go through
// excelize into the same code path.
//
// Loading is strict: a missing required column or an unparseable timestamp
// wraps types.ErrInvalidInput and the pipeline does not proceed. An empty
// PM2.5 cell is a missing reading, not an error.
package dataset

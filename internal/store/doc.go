// Package store holds the enriched observation table for the process
// lifetime. The table is built once at startup from the loader output —
// every row enriched through compute.Derive — and is read-only afterwards,
// so aggregations recompute on demand without locking.
package store

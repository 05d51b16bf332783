// Package types defines the shared domain types used across the loader,
// compute pipeline, and API: observations, seasons, health categories,
// and the fixed constants (category boundaries, legend colors, ranking cap)
// the presentation layer renders against.
package types

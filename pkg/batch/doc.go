// Package batch scores whole cohorts with the respiratory sub-score.
//
// Engine splits a respiratory.Series into contiguous chunks and scores them
// concurrently. Every chunk calls the same per-element rule as
// respiratory.Compute, so results are identical to the sequential path
// whatever Workers and ChunkSize are set to.
//
// Length validation runs before any goroutine starts; a mismatch returns
// the *respiratory.LengthMismatchError as-is and no scores.
//
// Options can be loaded from YAML (NewFromConfig) and hot-reloaded (Watch).
// Score counts are exposed in the Prometheus text format by WriteMetrics.
package batch

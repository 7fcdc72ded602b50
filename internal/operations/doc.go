// Package operations orchestrates a full consolidation run: registry
// acquisition and deduplication, the sequential per-file pipeline over
// the selected quarter archives, and the final handoff of result sets
// to the exporter. Execution is strictly sequential: one file is
// ingested, validated, correlated, aggregated and reported before the
// next begins, bounding peak memory to roughly one file's working set.
package operations

// Package review contains the diff-review pipeline: chunk partitioning,
// prompt assembly, provider response parsing, and result merging.
//
// The pipeline is parse -> filter -> limit -> chunk -> per-chunk provider
// call -> merge. Chunks are independent, so the engine reviews them in
// parallel with bounded concurrency; the merger still receives results in
// chunk submission order. A chunk whose provider call fails is folded into
// the merged result as a warning-severity issue instead of failing the run.
package review

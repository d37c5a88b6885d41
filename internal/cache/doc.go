// Package cache stores per-chunk review results on disk so unchanged chunks
// are not re-sent to a provider. Entries are keyed by a hash of provider,
// model, and chunk diff and expire after a configurable TTL.
package cache

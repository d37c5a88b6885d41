// Package gitctx gathers diff text for review: working-tree and staged
// changes, revision ranges, raw file collections wrapped as synthetic
// new-file diffs, and snippets line-diffed against an optional base.
package gitctx

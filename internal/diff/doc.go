// Package diff parses unified diffs into structured per-file change records
// and serializes them back for review submission.
//
// Parsing is best-effort and never fails: malformed "diff --git" headers
// yield empty paths, malformed "@@" headers drop the hunk, and stray lines
// outside any file or hunk are discarded. The additions/deletions counters on
// each [FileChange] always equal the +/- line counts across its hunks.
package diff

// Package filter applies include/ignore glob patterns to parsed file changes.
//
// Globs are translated once into compiled regular expressions; "**" spans
// path segments and unanchored patterns may match at any segment boundary.
package filter

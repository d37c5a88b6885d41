package filter

import (
	"regexp"
	"strings"

	"github.com/scry-dev/scry/internal/diff"
)

// Translate converts one glob pattern into an anchored regular expression.
// "**" matches across path separators (zero or more segments), "*" matches
// within a single segment, and "." is literal. A pattern that is not anchored
// at the start (does not begin with "**" or "/") may match starting at any
// path-segment boundary.
func Translate(pattern string) string {
	var b strings.Builder
	b.WriteString("^")

	anchored := strings.HasPrefix(pattern, "**") || strings.HasPrefix(pattern, "/")
	p := strings.TrimPrefix(pattern, "/")
	if !anchored {
		b.WriteString(`(?:.*/)?`)
	}

	for i := 0; i < len(p); {
		switch {
		case strings.HasPrefix(p[i:], "**/"):
			b.WriteString(`(?:.*/)?`)
			i += 3
		case strings.HasPrefix(p[i:], "/**") && i+3 == len(p):
			b.WriteString(`(?:/.*)?`)
			i += 3
		case strings.HasPrefix(p[i:], "**"):
			b.WriteString(`.*`)
			i += 2
		case p[i] == '*':
			b.WriteString(`[^/]*`)
			i++
		case p[i] == '?':
			b.WriteString(`[^/]`)
			i++
		default:
			b.WriteString(regexp.QuoteMeta(p[i : i+1]))
			i++
		}
	}

	b.WriteString("$")
	return b.String()
}

// Matcher holds a set of glob patterns compiled once for reuse.
type Matcher struct {
	res []*regexp.Regexp
}

// Compile translates each glob into a matcher. Patterns that fail to compile
// are dropped; filtering never fails.
func Compile(patterns []string) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		re, err := regexp.Compile(Translate(p))
		if err != nil {
			continue
		}
		m.res = append(m.res, re)
	}
	return m
}

// Match reports whether the whole path matches any compiled pattern.
func (m *Matcher) Match(path string) bool {
	for _, re := range m.res {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Empty reports whether the matcher holds no patterns.
func (m *Matcher) Empty() bool {
	return len(m.res) == 0
}

// Apply returns the subsequence of files that should be reviewed, in input
// order. When includeOnly is non-empty a file must match one of its patterns
// to survive; any file matching an ignore pattern is dropped.
func Apply(files []diff.FileChange, ignore, includeOnly []string) []diff.FileChange {
	inc := Compile(includeOnly)
	ign := Compile(ignore)

	var kept []diff.FileChange
	for _, f := range files {
		if !inc.Empty() && !inc.Match(f.Path) {
			continue
		}
		if ign.Match(f.Path) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// FileChange holds one file's modifications from a unified diff.
type FileChange struct {
	Path      string
	Additions int
	Deletions int
	Hunks     []Hunk
}

// TotalLines is the change volume of the file (added plus removed lines).
func (f FileChange) TotalLines() int {
	return f.Additions + f.Deletions
}

// Hunk is one contiguous changed region within a file. Content holds the
// verbatim hunk text, header line included, newline-joined.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Content  string
}

var (
	fileHeaderRe = regexp.MustCompile(`^diff --git a/(.*) b/(.*)$`)
	hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
)

// metadataPrefixes mark per-file diff metadata that carries no content.
var metadataPrefixes = []string{
	"index ",
	"--- ",
	"+++ ",
	"old mode",
	"new mode",
	"new file mode",
	"deleted file mode",
	"similarity index",
	"dissimilarity index",
	"rename from",
	"rename to",
	"copy from",
	"copy to",
	"Binary files",
}

func isMetadata(line string) bool {
	for _, p := range metadataPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

type parserState int

const (
	stateBeforeFile parserState = iota
	stateInFile
	stateInHunk
)

// parser scans a diff line by line, accumulating the current file and hunk.
type parser struct {
	state parserState
	files []FileChange
	file  FileChange
	hunk  Hunk
	body  []string
}

// Parse turns raw unified-diff text into per-file change records, in input
// order. It never fails: malformed headers degrade to empty paths or skipped
// hunks, and lines outside any file or hunk are dropped.
func Parse(text string) []FileChange {
	p := &parser{}
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for _, line := range lines {
		p.feed(line)
	}
	return p.finish()
}

func (p *parser) feed(line string) {
	switch {
	case strings.HasPrefix(line, "diff --git"):
		p.closeFile()
		p.file = FileChange{Path: newSidePath(line)}
		p.state = stateInFile

	case isMetadata(line):
		// carries nothing for the data model

	case strings.HasPrefix(line, "@@"):
		if p.state == stateBeforeFile {
			return
		}
		p.closeHunk()
		h, ok := parseHunkHeader(line)
		if !ok {
			// Unparseable header: no hunk opens, so the lines that follow
			// are not attributed to anything until the next boundary.
			return
		}
		p.hunk = h
		p.body = append(p.body[:0], line)
		p.state = stateInHunk

	default:
		if p.state != stateInHunk {
			return
		}
		p.body = append(p.body, line)
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			p.file.Additions++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			p.file.Deletions++
		}
	}
}

// closeHunk appends the open hunk, if any, to the current file.
func (p *parser) closeHunk() {
	if p.state != stateInHunk {
		return
	}
	p.hunk.Content = strings.Join(p.body, "\n")
	p.file.Hunks = append(p.file.Hunks, p.hunk)
	p.hunk = Hunk{}
	p.body = p.body[:0]
	p.state = stateInFile
}

// closeFile appends the open file, if any, to the output.
func (p *parser) closeFile() {
	p.closeHunk()
	if p.state == stateBeforeFile {
		return
	}
	p.files = append(p.files, p.file)
	p.file = FileChange{}
	p.state = stateBeforeFile
}

// finish flushes any open hunk and file, the same way a new file header would.
func (p *parser) finish() []FileChange {
	p.closeFile()
	return p.files
}

// newSidePath extracts the post-change path from a "diff --git a/x b/y"
// header. Taking the b/ side recovers renamed-file semantics. A header that
// does not match yields an empty path rather than an error.
func newSidePath(line string) string {
	m := fileHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[2]
}

// parseHunkHeader reads "@@ -a,b +c,d @@". The ,b and ,d groups default to 1
// when omitted, per the unified-diff convention for single-line hunks.
func parseHunkHeader(line string) (Hunk, bool) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return Hunk{}, false
	}
	return Hunk{
		OldStart: mustAtoi(m[1]),
		OldLines: atoiDefault(m[2], 1),
		NewStart: mustAtoi(m[3]),
		NewLines: atoiDefault(m[4], 1),
	}, true
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s) // digits guaranteed by the regex
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return mustAtoi(s)
}

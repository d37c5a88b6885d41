package diff

import (
	"fmt"
	"strings"
)

// Reconstruct serializes file changes back into unified-diff text for a
// downstream review call. The round trip is intentionally lossy: index hashes,
// mode lines, and similarity scores are not rebuilt, only a synthetic header
// per file followed by each hunk verbatim.
func Reconstruct(files []FileChange) string {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", f.Path, f.Path)
		fmt.Fprintf(&b, "--- a/%s\n", f.Path)
		fmt.Fprintf(&b, "+++ b/%s\n", f.Path)
		for _, h := range f.Hunks {
			b.WriteString(h.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}

package review

import (
	"sort"

	"github.com/scry-dev/scry/internal/diff"
)

// DefaultMaxDiffSize is the per-chunk line budget used when none is configured.
const DefaultMaxDiffSize = 4000

// Chunk is a batch of file changes destined for one provider call.
// TotalLines is the sum of additions and deletions over Files.
type Chunk struct {
	Index      int
	Files      []diff.FileChange
	TotalLines int
}

// SplitIntoChunks groups files into chunks whose total change volume stays
// within maxLines, preserving input order. A single file that alone exceeds
// the budget is emitted as its own oversized chunk; files are never split
// across chunks and partitioning never fails.
func SplitIntoChunks(files []diff.FileChange, maxLines int) []Chunk {
	if len(files) == 0 {
		return nil
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxDiffSize
	}

	var chunks []Chunk
	var cur Chunk

	flush := func() {
		if len(cur.Files) > 0 {
			cur.Index = len(chunks)
			chunks = append(chunks, cur)
			cur = Chunk{}
		}
	}

	for _, f := range files {
		size := f.TotalLines()

		if size > maxLines {
			flush()
			chunks = append(chunks, Chunk{
				Index:      len(chunks),
				Files:      []diff.FileChange{f},
				TotalLines: size,
			})
			continue
		}

		if len(cur.Files) > 0 && cur.TotalLines+size > maxLines {
			flush()
		}
		cur.Files = append(cur.Files, f)
		cur.TotalLines += size
	}
	flush()

	return chunks
}

// LimitFiles caps the number of files considered. Input already within the
// limit is returned unchanged; otherwise the files with the largest change
// volume win, stable with respect to input order for equal sizes. The
// returned order then reflects priority, not input position.
func LimitFiles(files []diff.FileChange, maxFiles int) []diff.FileChange {
	if maxFiles <= 0 || len(files) <= maxFiles {
		return files
	}

	ranked := make([]diff.FileChange, len(files))
	copy(ranked, files)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalLines() > ranked[j].TotalLines()
	})
	return ranked[:maxFiles]
}

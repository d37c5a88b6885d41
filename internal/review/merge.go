package review

import (
	"fmt"
	"strings"
)

// MergeResults combines per-chunk results into one. With no inputs it returns
// a fixed "nothing to review" approval; a single input passes through
// unchanged. Otherwise summaries are space-joined and issues concatenated in
// input order, positives are deduplicated, and the strictest assessment wins
// (request_changes > comment > approve).
func MergeResults(results []Result) Result {
	if len(results) == 0 {
		return Result{
			Summary:    "No changes to review.",
			Issues:     []Issue{},
			Positives:  []string{},
			Assessment: Approve,
		}
	}
	if len(results) == 1 {
		return results[0]
	}

	merged := Result{Assessment: Approve}
	var summaries []string
	seen := make(map[string]bool)

	for _, r := range results {
		if s := strings.TrimSpace(r.Summary); s != "" {
			summaries = append(summaries, s)
		}
		merged.Issues = append(merged.Issues, r.Issues...)
		for _, p := range r.Positives {
			if !seen[p] {
				seen[p] = true
				merged.Positives = append(merged.Positives, p)
			}
		}
		if assessmentRank(r.Assessment) > assessmentRank(merged.Assessment) {
			merged.Assessment = r.Assessment
		}
	}

	merged.Summary = strings.Join(summaries, " ")
	return merged
}

// ErrorResult builds the placeholder result for a chunk whose provider call
// failed, so one bad chunk is folded into the merged output as a visible
// low-severity issue instead of aborting the review.
func ErrorResult(chunkIndex int, err error) Result {
	return Result{
		Summary: fmt.Sprintf("Chunk %d could not be reviewed.", chunkIndex+1),
		Issues: []Issue{{
			Severity:    SeverityWarning,
			Category:    CategoryDocumentation,
			Title:       fmt.Sprintf("Review Error (chunk %d)", chunkIndex+1),
			Description: err.Error(),
		}},
		Assessment: Comment,
	}
}

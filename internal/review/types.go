package review

// Assessment is the overall verdict of a review.
type Assessment string

const (
	Approve        Assessment = "approve"
	RequestChanges Assessment = "request_changes"
	Comment        Assessment = "comment"
)

// assessmentRank orders verdicts by strictness (higher = stricter).
func assessmentRank(a Assessment) int {
	switch a {
	case RequestChanges:
		return 2
	case Comment:
		return 1
	case Approve:
		return 0
	default:
		return 0
	}
}

// Severity grades an individual issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Category classifies an issue.
type Category string

const (
	CategoryBug           Category = "bug"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
	CategoryStyle         Category = "style"
	CategoryDocumentation Category = "documentation"
	CategoryTesting       Category = "testing"
)

// Issue is a single problem raised by the reviewer.
type Issue struct {
	Severity    Severity `json:"severity"`
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Path        string   `json:"path,omitempty"`
	Line        int      `json:"line,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// Result is one review outcome: either a single chunk's response from the
// provider or the merged outcome of the whole run.
type Result struct {
	Summary    string     `json:"summary"`
	Issues     []Issue    `json:"issues"`
	Positives  []string   `json:"positives"`
	Assessment Assessment `json:"overall_assessment"`
}

// Report wraps the merged result with run metadata for output writers.
type Report struct {
	RunID   string `json:"runId"`
	Mode    string `json:"mode"`
	Range   string `json:"range,omitempty"`
	Files   int    `json:"files"`
	Chunks  int    `json:"chunks"`
	Result  Result `json:"result"`
	TotalMs int64  `json:"totalMs"`
	LLMMs   int64  `json:"llmMs"`
}

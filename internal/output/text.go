package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/scry-dev/scry/internal/review"
)

// TextWriter renders a human-readable terminal report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}
	res := report.Result

	ew.printf("Scry Code Review — %s mode\n", report.Mode)
	if report.Range != "" {
		ew.printf("Range: %s\n", report.Range)
	}
	ew.println(strings.Repeat("─", 60))

	if res.Summary != "" {
		ew.printf("%s\n", res.Summary)
		ew.println(strings.Repeat("─", 60))
	}

	ew.printf("Verdict: %s | %d files in %d chunks | %d issues\n",
		assessmentLabel(res.Assessment), report.Files, report.Chunks, len(res.Issues))

	grouped := groupBySeverity(res.Issues)
	for _, sev := range severityOrder {
		issues := grouped[sev]
		if len(issues) == 0 {
			continue
		}
		ew.printf("\n%s %s\n", severityIcon(sev), strings.ToUpper(string(sev)))
		ew.println(strings.Repeat("─", 40))
		for _, is := range issues {
			ew.printf("• %s", is.Title)
			if is.Path != "" {
				ew.printf("  (%s", is.Path)
				if is.Line > 0 {
					ew.printf(":%d", is.Line)
				}
				ew.printf(")")
			}
			ew.printf(" [%s]\n", is.Category)
			if is.Description != "" {
				ew.printf("  %s\n", strings.ReplaceAll(is.Description, "\n", "\n  "))
			}
			if is.Suggestion != "" {
				ew.printf("  Suggestion: %s\n", strings.ReplaceAll(is.Suggestion, "\n", "\n  "))
			}
		}
	}

	if len(res.Positives) > 0 {
		ew.println("\nWhat looks good:")
		for _, p := range res.Positives {
			ew.printf("  + %s\n", p)
		}
	}

	ew.printf("\nReviewed in %dms (LLM: %dms)\n", report.TotalMs, report.LLMMs)
	return ew.err
}

func assessmentLabel(a review.Assessment) string {
	switch a {
	case review.Approve:
		return "APPROVE"
	case review.RequestChanges:
		return "REQUEST CHANGES"
	case review.Comment:
		return "COMMENT"
	default:
		return strings.ToUpper(string(a))
	}
}

func severityIcon(s review.Severity) string {
	switch s {
	case review.SeverityCritical:
		return "✖"
	case review.SeverityWarning:
		return "▲"
	default:
		return "ℹ"
	}
}

// errWriter folds repeated write errors into one.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}

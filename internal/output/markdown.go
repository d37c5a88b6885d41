package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/scry-dev/scry/internal/review"
)

// MarkdownWriter renders a report suitable for pasting into a pull request.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	var b strings.Builder
	res := report.Result

	b.WriteString("## Scry Code Review\n\n")
	b.WriteString(fmt.Sprintf("**Verdict:** %s\n\n", assessmentLabel(res.Assessment)))

	if res.Summary != "" {
		b.WriteString(res.Summary)
		b.WriteString("\n\n")
	}

	grouped := groupBySeverity(res.Issues)
	for _, sev := range severityOrder {
		issues := grouped[sev]
		if len(issues) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("### %s %s\n\n", severityIcon(sev), titleCase(string(sev))))
		for _, is := range issues {
			b.WriteString(fmt.Sprintf("- **%s**", is.Title))
			if is.Path != "" {
				if is.Line > 0 {
					b.WriteString(fmt.Sprintf(" — `%s:%d`", is.Path, is.Line))
				} else {
					b.WriteString(fmt.Sprintf(" — `%s`", is.Path))
				}
			}
			b.WriteString(fmt.Sprintf(" _(%s)_\n", is.Category))
			if is.Description != "" {
				b.WriteString(fmt.Sprintf("  %s\n", strings.ReplaceAll(is.Description, "\n", "\n  ")))
			}
			if is.Suggestion != "" {
				b.WriteString(fmt.Sprintf("  Suggestion: %s\n", strings.ReplaceAll(is.Suggestion, "\n", "\n  ")))
			}
		}
		b.WriteString("\n")
	}

	if len(res.Positives) > 0 {
		b.WriteString("### What looks good\n\n")
		for _, p := range res.Positives {
			b.WriteString(fmt.Sprintf("- %s\n", p))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("<sub>%d files in %d chunks, reviewed in %dms</sub>\n",
		report.Files, report.Chunks, report.TotalMs))

	_, err := io.WriteString(w, b.String())
	return err
}

// Render returns the markdown body as a string, for posting to GitHub.
func (m *MarkdownWriter) Render(report *review.Report) (string, error) {
	var b strings.Builder
	if err := m.Write(&b, report); err != nil {
		return "", err
	}
	return b.String(), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

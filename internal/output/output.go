package output

import (
	"fmt"
	"io"
	"os"

	"github.com/scry-dev/scry/internal/review"
)

// Writer renders a report in one format.
type Writer interface {
	Write(w io.Writer, report *review.Report) error
}

// GetWriter returns a writer for the named format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport renders the report to outPath, or stdout when outPath is empty.
func WriteReport(report *review.Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writer.Write(w, report)
}

func groupBySeverity(issues []review.Issue) map[review.Severity][]review.Issue {
	m := make(map[review.Severity][]review.Issue)
	for _, is := range issues {
		m[is.Severity] = append(m[is.Severity], is)
	}
	return m
}

// severityOrder lists severities strictest first for rendering.
var severityOrder = []review.Severity{
	review.SeverityCritical,
	review.SeverityWarning,
	review.SeverityInfo,
}

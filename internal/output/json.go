package output

import (
	"encoding/json"
	"io"

	"github.com/scry-dev/scry/internal/review"
)

// JSONWriter marshals the full report for machine consumption.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *review.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

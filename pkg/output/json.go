package output

import (
	"encoding/json"
	"io"

	"github.com/sdejongh/synctools/pkg/models"
)

// JSONFormatter renders the report as a single JSON document for scripting
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONReport is the document written by JSONFormatter
type JSONReport struct {
	Local      string                   `json:"local"`
	Remote     string                   `json:"remote"`
	DurationMs int64                    `json:"duration_ms"`
	Summary    map[models.Status]int    `json:"summary"`
	InSync     bool                     `json:"in_sync"`
	Entries    []models.ComparisonEntry `json:"entries"`
}

// Render writes the report to w
func (f *JSONFormatter) Render(w io.Writer, report *models.DiffReport) error {
	entries := report.Entries
	if entries == nil {
		entries = []models.ComparisonEntry{}
	}

	doc := JSONReport{
		Local:      report.SourcePath,
		Remote:     report.CounterpartPath,
		DurationMs: report.Duration.Milliseconds(),
		Summary:    report.Counts(),
		InSync:     report.InSync(),
		Entries:    entries,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

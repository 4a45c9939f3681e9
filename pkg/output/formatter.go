package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/synctools/pkg/models"
)

// Formatter renders a comparison report
type Formatter interface {
	// Render writes the full report to w
	Render(w io.Writer, report *models.DiffReport) error

	// Name returns the formatter name
	Name() string
}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string, verbose bool) (Formatter, error) {
	switch name {
	case "", "human":
		return NewHumanFormatter(verbose), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use: human, json)", name)
	}
}

package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/sortnorris/pkg/models"
)

// Formatter defines the interface for run output.
// Implementations include the human summary table, JSON and a progress bar.
type Formatter interface {
	// Start initializes the formatter for a new run
	Start(writer io.Writer, config models.RunConfig) error

	// Progress is called once per candidate, after it was processed
	Progress(outcome models.Outcome) error

	// Complete finalizes output and displays the summary
	Complete(report *models.RunReport) error

	// Error reports a run-level error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// New returns the formatter registered under name, writing to w
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "", "human":
		return NewHumanFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "progress":
		return NewProgressFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
}

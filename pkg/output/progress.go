package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/sortnorris/pkg/models"
)

// progressTemplate shows the candidate counter, the last action and the elapsed time.
// The total is unknown during a single-pass walk.
const progressTemplate = `{{ string . "prefix" }} {{ counters . }} {{ string . "last" }} {{ etime . }}`

// ProgressFormatter shows a live counter of processed candidates and then
// the human summary
type ProgressFormatter struct {
	mu      sync.Mutex
	writer  io.Writer
	bar     *pb.ProgressBar
	summary *HumanFormatter
}

// NewProgressFormatter creates a new progress bar formatter writing to w
// (standard output when nil)
func NewProgressFormatter(w io.Writer) *ProgressFormatter {
	return &ProgressFormatter{writer: w, summary: NewHumanFormatter(w)}
}

// Start creates and starts the bar
func (f *ProgressFormatter) Start(writer io.Writer, config models.RunConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if writer == nil {
		writer = f.writer
	}
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer

	if err := f.summary.Start(writer, config); err != nil {
		return err
	}

	prefix := "Relocating"
	if config.Preview {
		prefix = "Previewing"
	}

	f.bar = pb.ProgressBarTemplate(progressTemplate).New(0)
	f.bar.SetWriter(writer)
	f.bar.Set("prefix", prefix)
	if width := terminalWidth(writer); width > 0 {
		f.bar.SetMaxWidth(width)
	}
	f.bar.Start()
	return nil
}

// Progress advances the counter by one candidate
func (f *ProgressFormatter) Progress(outcome models.Outcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar == nil {
		return nil
	}
	f.bar.Set("last", describe(outcome))
	f.bar.Increment()
	return nil
}

// Complete stops the bar and prints the summary
func (f *ProgressFormatter) Complete(report *models.RunReport) error {
	f.mu.Lock()
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	f.mu.Unlock()

	return f.summary.Complete(report)
}

// Error stops the bar and reports the error
func (f *ProgressFormatter) Error(err error) error {
	f.mu.Lock()
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	f.mu.Unlock()

	return f.summary.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

// describe returns a short label for the bar
func describe(o models.Outcome) string {
	if o.Failed() {
		return fmt.Sprintf("failed %s", o.Candidate.Name())
	}
	switch o.Action {
	case models.ActionDeleted:
		return fmt.Sprintf("duplicate %s", o.Candidate.Name())
	case models.ActionMoved:
		return fmt.Sprintf("moved %s", o.Placement.Filename)
	default:
		return o.Candidate.Name()
	}
}

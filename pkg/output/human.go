package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sdejongh/sortnorris/pkg/models"
)

// HumanFormatter prints a header and a summary table.
// Per-file decisions are reported by the logger as they happen.
type HumanFormatter struct {
	writer    io.Writer
	preview   bool
	startTime time.Time
}

// NewHumanFormatter creates a new human-readable formatter writing to w
// (standard output when nil)
func NewHumanFormatter(w io.Writer) *HumanFormatter {
	return &HumanFormatter{writer: w}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, config models.RunConfig) error {
	if writer == nil {
		writer = f.writer
	}
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.preview = config.Preview
	f.startTime = time.Now()

	mode := ""
	if config.Preview {
		mode = " (preview, nothing will be changed)"
	}
	fmt.Fprintf(writer, "Relocating %s -> %s%s\n", config.SourcePath, config.TargetPath, mode)
	return nil
}

// Progress does nothing; decisions are logged
func (f *HumanFormatter) Progress(outcome models.Outcome) error {
	return nil
}

// Complete displays the summary table and the failures
func (f *HumanFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}
	width := terminalWidth(f.writer)

	verb := "Relocation"
	if report.Preview {
		verb = "Preview"
	}
	fmt.Fprintf(f.writer, "\n%s completed in %s\n\n", verb, report.Duration.Round(time.Millisecond))

	fmt.Fprintln(f.writer, renderTable(
		[]string{"Metric", "Count", "Size"},
		summaryRows(report),
		[]columnAlignment{alignLeft, alignRight, alignRight},
		width,
	))

	fmt.Fprintf(f.writer, "\nStatus: %s\n", report.Status)

	if len(report.Errors) > 0 {
		rows := make([][]string, 0, len(report.Errors))
		for _, e := range report.Errors {
			rows = append(rows, []string{e.FilePath, e.Error})
		}
		fmt.Fprintf(f.writer, "\nFailures:\n")
		fmt.Fprintln(f.writer, renderTable([]string{"Source", "Error"}, rows, nil, width))
	}

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

func summaryRows(report *models.RunReport) [][]string {
	s := report.Stats
	count := strconv.Itoa
	return [][]string{
		{"Directories scanned", count(s.DirsScanned), ""},
		{"Files scanned", count(s.FilesScanned), ""},
		{"Skipped (extension)", count(s.FilesSkipped), ""},
		{"Excluded", count(s.PathsExcluded), ""},
		{"Candidates", count(s.Candidates), ""},
		{"Moved", count(s.FilesMoved), ""},
		{"Moved with new name", count(s.FilesRenamed), ""},
		{"Duplicates deleted", count(s.DuplicatesDeleted), humanize.IBytes(uint64(s.BytesReclaimed))},
		{"Failed", count(s.FilesFailed), ""},
		{"Directories created", count(s.DirsCreated), ""},
		{"Data moved", "", humanize.IBytes(uint64(s.BytesMoved))},
	}
}

package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/sortnorris/pkg/models"
)

// JSONFormatter writes the final report as a single JSON document for scripting
type JSONFormatter struct {
	writer io.Writer
}

// JSONReportData represents the final report
type JSONReportData struct {
	RunID      string            `json:"run_id"`
	Source     string            `json:"source"`
	Target     string            `json:"target"`
	Preview    bool              `json:"preview"`
	Status     string            `json:"status"`
	Duration   string            `json:"duration"`
	DurationMs int64             `json:"duration_ms"`
	Stats      JSONStatsData     `json:"stats"`
	Outcomes   []JSONOutcomeData `json:"outcomes,omitempty"`
	Errors     []JSONErrorData   `json:"errors,omitempty"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	DirsScanned       int   `json:"dirs_scanned"`
	FilesScanned      int   `json:"files_scanned"`
	FilesSkipped      int   `json:"files_skipped"`
	PathsExcluded     int   `json:"paths_excluded"`
	Candidates        int   `json:"candidates"`
	FilesMoved        int   `json:"files_moved"`
	FilesRenamed      int   `json:"files_renamed"`
	DuplicatesDeleted int   `json:"duplicates_deleted"`
	FilesFailed       int   `json:"files_failed"`
	DirsCreated       int   `json:"dirs_created"`
	BytesMoved        int64 `json:"bytes_moved"`
	BytesReclaimed    int64 `json:"bytes_reclaimed"`
}

// JSONOutcomeData represents one processed candidate
type JSONOutcomeData struct {
	Source         string `json:"source"`
	Classification string `json:"classification,omitempty"`
	Action         string `json:"action"`
	Target         string `json:"target,omitempty"`
	Timestamp      string `json:"timestamp,omitempty"`
	TimestampFrom  string `json:"timestamp_source,omitempty"`
	Error          string `json:"error,omitempty"`
}

// JSONErrorData represents a failure entry
type JSONErrorData struct {
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
	Kind   string `json:"kind"`
	Error  string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter writing to w (standard output when nil)
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, config models.RunConfig) error {
	if writer == nil {
		writer = f.writer
	}
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress does nothing; output stays a single parseable document
func (f *JSONFormatter) Progress(outcome models.Outcome) error {
	return nil
}

// Complete writes the report as indented JSON
func (f *JSONFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	s := report.Stats
	data := JSONReportData{
		RunID:      report.RunID,
		Source:     report.SourcePath,
		Target:     report.TargetPath,
		Preview:    report.Preview,
		Status:     string(report.Status),
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			DirsScanned:       s.DirsScanned,
			FilesScanned:      s.FilesScanned,
			FilesSkipped:      s.FilesSkipped,
			PathsExcluded:     s.PathsExcluded,
			Candidates:        s.Candidates,
			FilesMoved:        s.FilesMoved,
			FilesRenamed:      s.FilesRenamed,
			DuplicatesDeleted: s.DuplicatesDeleted,
			FilesFailed:       s.FilesFailed,
			DirsCreated:       s.DirsCreated,
			BytesMoved:        s.BytesMoved,
			BytesReclaimed:    s.BytesReclaimed,
		},
	}

	for _, o := range report.Outcomes {
		od := JSONOutcomeData{
			Source:         o.Candidate.Path,
			Classification: string(o.Classification),
			Action:         string(o.Action),
			Target:         o.Target(),
			TimestampFrom:  string(o.Candidate.TimestampSource),
		}
		if !o.Candidate.Timestamp.IsZero() {
			od.Timestamp = o.Candidate.Timestamp.Format(time.RFC3339)
		}
		if o.Failure != nil {
			od.Target = o.Failure.Target
			od.Error = o.Failure.Message
		}
		data.Outcomes = append(data.Outcomes, od)
	}

	for _, e := range report.Errors {
		data.Errors = append(data.Errors, JSONErrorData{
			Path:   e.FilePath,
			Target: e.TargetPath,
			Kind:   string(e.Kind),
			Error:  e.Error,
		})
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Error writes a run-level error as JSON
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		return nil
	}
	return json.NewEncoder(f.writer).Encode(map[string]string{"error": err.Error()})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

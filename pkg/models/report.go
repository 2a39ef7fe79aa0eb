package models

import (
	"time"
)

// RunReport represents the results of a relocation run
type RunReport struct {
	// Run details
	RunID      string
	SourcePath string
	TargetPath string
	Preview    bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Outcomes holds one entry per candidate, in walk order
	Outcomes []Outcome

	// Errors encountered
	Errors []RunError

	// Overall status
	Status RunStatus
}

// Statistics holds relocation metrics
type Statistics struct {
	FilesScanned  int // Regular files seen by the walk
	FilesSkipped  int // Extension not in the set
	PathsExcluded int // Files or directories matched by an exclude pattern
	DirsScanned   int

	Candidates        int
	FilesMoved        int // New files moved to their natural name
	FilesRenamed      int // Conflicts moved to a _NNN name
	DuplicatesDeleted int
	FilesFailed       int
	DirsCreated       int

	BytesMoved     int64
	BytesReclaimed int64 // Size of deleted duplicates
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusSuccess indicates every candidate was handled
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates the walk completed but some candidates failed
	StatusPartial RunStatus = "partial"
	// StatusFailed indicates the walk itself could not complete
	StatusFailed RunStatus = "failed"
	// StatusCancelled indicates the run was interrupted
	StatusCancelled RunStatus = "cancelled"
)

// RunError represents a failed candidate in the report
type RunError struct {
	FilePath   string
	TargetPath string
	Kind       FailureKind
	Error      string
	Timestamp  time.Time
}

// ExitCode returns the process exit code for the run status.
// Per-candidate failures are recorded in the audit logs and do not change the exit code.
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess, StatusPartial:
		return 0
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}

// Record folds an outcome into the report
func (r *RunReport) Record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.Stats.Candidates++
	if o.DirCreated {
		r.Stats.DirsCreated++
	}

	if o.Failed() {
		r.Stats.FilesFailed++
		r.Errors = append(r.Errors, RunError{
			FilePath:   o.Candidate.Path,
			TargetPath: o.Failure.Target,
			Kind:       o.Failure.Kind,
			Error:      o.Failure.Message,
			Timestamp:  time.Now(),
		})
		return
	}

	switch o.Action {
	case ActionMoved:
		if o.Classification == ClassConflict {
			r.Stats.FilesRenamed++
		} else {
			r.Stats.FilesMoved++
		}
		r.Stats.BytesMoved += o.Candidate.Size
	case ActionDeleted:
		r.Stats.DuplicatesDeleted++
		r.Stats.BytesReclaimed += o.Candidate.Size
	}
}

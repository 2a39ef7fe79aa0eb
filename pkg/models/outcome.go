package models

import "time"

// Classification is the verdict for a candidate against its placement
type Classification string

const (
	// ClassNew indicates nothing exists at the placement path
	ClassNew Classification = "new"
	// ClassDuplicate indicates the placement path holds identical content
	ClassDuplicate Classification = "duplicate"
	// ClassConflict indicates the placement path holds different content
	ClassConflict Classification = "conflict"
	// ClassUnknown indicates the candidate failed before it could be classified
	ClassUnknown Classification = ""
)

// Action represents what was done with a candidate
type Action string

const (
	// ActionMoved means the source was moved into the target tree
	ActionMoved Action = "moved"
	// ActionDeleted means the source was deleted as a duplicate
	ActionDeleted Action = "deleted"
	// ActionFailed means an error stopped the candidate
	ActionFailed Action = "failed"
)

// FailureKind categorizes per-candidate errors
type FailureKind string

const (
	// FailureMissing means the file vanished or was never there
	FailureMissing FailureKind = "missing"
	// FailurePermission means the OS denied access
	FailurePermission FailureKind = "permission"
	// FailureIO covers any other I/O error
	FailureIO FailureKind = "io"
)

// Failure describes why a candidate could not be completed
type Failure struct {
	Kind    FailureKind
	Message string

	// Target is the attempted target path, empty when the failure happened
	// before a move was attempted or while deleting a duplicate
	Target string

	Err error
}

// Outcome is the tagged result of processing a single candidate.
// Exactly one of a successful Action or a non-nil Failure is set.
type Outcome struct {
	Candidate      Candidate
	Classification Classification
	Action         Action

	// Placement is the final placement (disambiguated for conflicts).
	// For duplicates it is the existing identical file. Empty when the
	// candidate failed before a placement was computed.
	Placement Placement

	// DirCreated is true when the date directory was (or in preview would be) created
	DirCreated bool

	// Preview is true when no filesystem mutation was performed
	Preview bool

	Failure  *Failure
	Duration time.Duration
}

// Failed returns true if the candidate ended in a failure
func (o Outcome) Failed() bool {
	return o.Failure != nil
}

// Target returns the final or attempted target path, or empty
func (o Outcome) Target() string {
	return o.Placement.Path()
}

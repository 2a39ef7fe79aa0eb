package relocate

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/sdejongh/sortnorris/pkg/audit"
	"github.com/sdejongh/sortnorris/pkg/digest"
	"github.com/sdejongh/sortnorris/pkg/extensions"
	"github.com/sdejongh/sortnorris/pkg/logging"
	"github.com/sdejongh/sortnorris/pkg/models"
	"github.com/sdejongh/sortnorris/pkg/planner"
	"github.com/sdejongh/sortnorris/pkg/storage"
)

// Mover classifies a single candidate against the target tree and acts on it.
// It never returns an error: every failure ends up in the Outcome and the failure log.
type Mover struct {
	backend storage.Backend
	planner *planner.Planner
	hasher  *digest.Hasher
	sink    audit.Sink
	logger  logging.Logger

	targetRoot string
	preview    bool

	// planned holds directories a preview run already reported as created
	planned map[string]bool
}

// NewMover creates a mover for the given run configuration
func NewMover(
	backend storage.Backend,
	hasher *digest.Hasher,
	sink audit.Sink,
	logger logging.Logger,
	config models.RunConfig,
) *Mover {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if sink == nil {
		sink = audit.NewNullSink()
	}
	return &Mover{
		backend:    backend,
		planner:    planner.New(backend, config.Loc()),
		hasher:     hasher,
		sink:       sink,
		logger:     logger,
		targetRoot: config.TargetPath,
		preview:    config.Preview,
		planned:    make(map[string]bool),
	}
}

// Process runs the decision sequence for one candidate:
// date it, place it, then move it (new), delete it (duplicate) or move it
// under a numbered name (conflict).
func (m *Mover) Process(ctx context.Context, c models.Candidate) models.Outcome {
	start := time.Now()
	out := m.process(ctx, c)
	out.Duration = time.Since(start)
	return out
}

func (m *Mover) process(ctx context.Context, c models.Candidate) models.Outcome {
	out := models.Outcome{Candidate: c, Preview: m.preview}

	info, err := m.backend.Stat(ctx, c.Path)
	if err != nil {
		return m.fail(ctx, out, "", failureMessage(err), err)
	}
	out.Candidate.Size = info.Size
	if info.HasChangeTime() {
		out.Candidate.Timestamp = info.ChangeTime
		out.Candidate.TimestampSource = models.TimestampChange
	} else {
		out.Candidate.Timestamp = info.ModTime
		out.Candidate.TimestampSource = models.TimestampModification
	}

	dir := m.planner.TargetDirectory(m.targetRoot, out.Candidate.Timestamp)
	created, err := m.planner.EnsureDirectory(ctx, dir, m.preview)
	if err != nil {
		return m.fail(ctx, out, "", failureMessage(err), err)
	}
	if created && m.preview {
		created = !m.planned[dir]
		m.planned[dir] = true
	}
	if created {
		out.DirCreated = true
		m.logger.Info(ctx, m.verb("Creating directory", "Would create directory"), logging.Fields{"path": dir})
	}

	placement := models.Placement{Directory: dir, Filename: c.Name()}
	exists, err := m.backend.Exists(ctx, placement.Path())
	if err != nil {
		return m.fail(ctx, out, "", failureMessage(err), err)
	}
	if !exists {
		out.Classification = models.ClassNew
		return m.move(ctx, out, placement)
	}

	same, err := m.hasher.Same(ctx, m.backend, c.Path, placement.Path())
	if err != nil {
		return m.fail(ctx, out, "", failureMessage(err), err)
	}
	if same {
		out.Classification = models.ClassDuplicate
		out.Placement = placement
		return m.deleteDuplicate(ctx, out)
	}

	out.Classification = models.ClassConflict
	name, err := m.planner.NextAvailableName(ctx, extensions.Stem(c.Name()), extensions.Ext(c.Name()), dir)
	if err != nil {
		return m.fail(ctx, out, "", failureMessage(err), err)
	}
	m.logger.Debug(ctx, "Name taken by different content", logging.Fields{
		"source":   c.Path,
		"existing": placement.Path(),
		"new_name": name,
	})
	placement.Filename = name
	return m.move(ctx, out, placement)
}

// move moves the source to placement and records the index and verify entries
func (m *Mover) move(ctx context.Context, out models.Outcome, placement models.Placement) models.Outcome {
	src, dst := out.Candidate.Path, placement.Path()
	out.Placement = placement

	if !m.preview {
		if err := m.backend.Move(ctx, src, dst); err != nil {
			return m.fail(ctx, out, dst, "Failed to move file: "+err.Error(), err)
		}
		m.audit(ctx, m.sink.RecordAction(src, models.ActionMoved))
		m.audit(ctx, m.sink.RecordVerification(dst))
	}

	out.Action = models.ActionMoved
	m.logger.Info(ctx, m.verb("Moved", "Would move"), logging.Fields{
		"source": src,
		"target": dst,
		"class":  string(out.Classification),
	})
	return out
}

// deleteDuplicate removes a source whose content already exists at its placement
func (m *Mover) deleteDuplicate(ctx context.Context, out models.Outcome) models.Outcome {
	src := out.Candidate.Path

	if !m.preview {
		if err := m.backend.Remove(ctx, src); err != nil {
			return m.fail(ctx, out, "", "Failed to delete file: "+err.Error(), err)
		}
		m.audit(ctx, m.sink.RecordAction(src, models.ActionDeleted))
	}

	out.Action = models.ActionDeleted
	m.logger.Info(ctx, m.verb("Deleted duplicate", "Would delete duplicate"), logging.Fields{
		"source":    src,
		"duplicate": out.Placement.Path(),
	})
	return out
}

// fail records a failure and returns the failed outcome
func (m *Mover) fail(ctx context.Context, out models.Outcome, target, message string, err error) models.Outcome {
	out.Action = models.ActionFailed
	out.Failure = &models.Failure{
		Kind:    failureKind(err),
		Message: message,
		Target:  target,
		Err:     err,
	}

	if !m.preview {
		m.audit(ctx, m.sink.RecordFailure(out.Candidate.Path, target, message))
	}

	fields := logging.Fields{"source": out.Candidate.Path}
	if target != "" {
		fields["target"] = target
	}
	m.logger.Error(ctx, message, err, fields)
	return out
}

// audit logs sink errors; a broken log never stops the run
func (m *Mover) audit(ctx context.Context, err error) {
	if err != nil {
		m.logger.Error(ctx, "Failed to write audit record", err, nil)
	}
}

func (m *Mover) verb(done, preview string) string {
	if m.preview {
		return preview
	}
	return done
}

// failureKind maps an error onto the failure taxonomy
func failureKind(err error) models.FailureKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return models.FailureMissing
	case errors.Is(err, fs.ErrPermission):
		return models.FailurePermission
	default:
		return models.FailureIO
	}
}

// failureMessage is the failure log text for errors raised while inspecting a candidate
func failureMessage(err error) string {
	switch failureKind(err) {
	case models.FailureMissing:
		return "File not found"
	case models.FailurePermission:
		return "Permission denied"
	default:
		return "Unexpected error: " + err.Error()
	}
}

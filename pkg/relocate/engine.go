package relocate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/sortnorris/pkg/audit"
	"github.com/sdejongh/sortnorris/pkg/digest"
	"github.com/sdejongh/sortnorris/pkg/extensions"
	"github.com/sdejongh/sortnorris/pkg/logging"
	"github.com/sdejongh/sortnorris/pkg/models"
	"github.com/sdejongh/sortnorris/pkg/output"
	"github.com/sdejongh/sortnorris/pkg/storage"
)

// Engine orchestrates one relocation run: a single sequential walk of the
// source tree with every matching file handed to the Mover
type Engine struct {
	backend   storage.Backend
	exts      extensions.Set
	mover     *Mover
	excluder  *Excluder
	formatter output.Formatter
	logger    logging.Logger
	config    models.RunConfig
}

// NewEngine creates a new relocation engine
func NewEngine(
	backend storage.Backend,
	exts extensions.Set,
	hasher *digest.Hasher,
	sink audit.Sink,
	formatter output.Formatter,
	logger logging.Logger,
	config models.RunConfig,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		backend:   backend,
		exts:      exts,
		mover:     NewMover(backend, hasher, sink, logger, config),
		excluder:  NewExcluder(config.Exclude),
		formatter: formatter,
		logger:    logger,
		config:    config,
	}
}

// Run walks the source tree once and returns the aggregated report.
// Per-file failures only mark the report partial; the returned error is
// non-nil when the walk itself fails or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) (*models.RunReport, error) {
	startTime := time.Now()

	runID := e.config.ID
	if runID == "" {
		runID = uuid.NewString()
	}

	report := &models.RunReport{
		RunID:      runID,
		SourcePath: e.config.SourcePath,
		TargetPath: e.config.TargetPath,
		Preview:    e.config.Preview,
		StartTime:  startTime,
		Status:     models.StatusSuccess,
	}

	e.logger.Info(ctx, "Starting relocation run", logging.Fields{
		"run_id":     runID,
		"source":     e.config.SourcePath,
		"target":     e.config.TargetPath,
		"preview":    e.config.Preview,
		"extensions": e.exts.Len(),
	})

	if e.formatter != nil {
		e.formatter.Start(nil, e.config)
	}

	walkErr := e.backend.Walk(ctx, e.config.SourcePath, func(path string, info *storage.FileInfo, err error) error {
		return e.visit(ctx, report, path, info, err)
	})

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(startTime)

	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			report.Status = models.StatusCancelled
			e.logger.Warn(ctx, "Run cancelled", logging.Fields{"processed": report.Stats.Candidates})
			e.finish(report)
			return report, walkErr
		}

		report.Status = models.StatusFailed
		err := fmt.Errorf("failed to walk source %s: %w", e.config.SourcePath, walkErr)
		e.logger.Error(ctx, "Run aborted", err, nil)
		if e.formatter != nil {
			e.formatter.Error(err)
		}
		return report, err
	}

	if report.Stats.FilesFailed > 0 {
		report.Status = models.StatusPartial
	}

	e.logger.Info(ctx, "Relocation run completed", logging.Fields{
		"run_id":     runID,
		"status":     string(report.Status),
		"moved":      report.Stats.FilesMoved + report.Stats.FilesRenamed,
		"duplicates": report.Stats.DuplicatesDeleted,
		"failed":     report.Stats.FilesFailed,
		"duration":   report.Duration.String(),
	})
	e.finish(report)
	return report, nil
}

// visit handles one walked entry
func (e *Engine) visit(ctx context.Context, report *models.RunReport, path string, info *storage.FileInfo, err error) error {
	if err != nil {
		if path == e.config.SourcePath {
			return err
		}
		// Unreadable entries below the root are skipped like any non-candidate
		e.logger.Warn(ctx, "Skipping unreadable entry", logging.Fields{"path": path, "error": err.Error()})
		return nil
	}

	rel, relErr := filepath.Rel(e.config.SourcePath, path)
	if relErr != nil {
		rel = path
	}

	if info.IsDir {
		if path != e.config.SourcePath && e.excluder.Match(rel, true) {
			report.Stats.PathsExcluded++
			e.logger.Debug(ctx, "Excluding directory", logging.Fields{"path": path})
			return filepath.SkipDir
		}
		report.Stats.DirsScanned++
		e.logger.Debug(ctx, "Scanning directory", logging.Fields{"path": path})
		return nil
	}

	if !info.IsRegular {
		e.logger.Debug(ctx, "Skipping non-regular file", logging.Fields{"path": path})
		return nil
	}
	report.Stats.FilesScanned++

	if e.excluder.Match(rel, false) {
		report.Stats.PathsExcluded++
		e.logger.Debug(ctx, "Excluding file", logging.Fields{"path": path})
		return nil
	}

	ext := extensions.Ext(filepath.Base(path))
	if !e.exts.Contains(ext) {
		report.Stats.FilesSkipped++
		e.logger.Debug(ctx, "Skipping file", logging.Fields{"path": path, "extension": ext})
		return nil
	}

	candidate := models.Candidate{
		Path:         path,
		RelativePath: rel,
		Extension:    ext,
		Size:         info.Size,
	}

	// The in-flight candidate always completes; cancellation is honoured between files
	outcome := e.mover.Process(context.WithoutCancel(ctx), candidate)
	report.Record(outcome)

	if e.formatter != nil {
		e.formatter.Progress(outcome)
	}
	return nil
}

func (e *Engine) finish(report *models.RunReport) {
	if e.formatter != nil {
		e.formatter.Complete(report)
	}
}

package planner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sdejongh/sortnorris/pkg/storage"
)

// TargetDirectory maps a timestamp to root/YYYY/MM/DD in the given location.
// It is a pure function: equal instants and locations give equal paths.
func TargetDirectory(root string, ts time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t := ts.In(loc)
	return filepath.Join(root, t.Format("2006"), t.Format("01"), t.Format("02"))
}

// Planner decides where candidates land in the target tree.
// It assumes it is the only writer in the directories it inspects.
type Planner struct {
	backend storage.Backend
	loc     *time.Location
}

// New creates a planner that partitions dates in loc (local time when nil)
func New(backend storage.Backend, loc *time.Location) *Planner {
	if loc == nil {
		loc = time.Local
	}
	return &Planner{backend: backend, loc: loc}
}

// TargetDirectory returns the date directory for ts under root
func (p *Planner) TargetDirectory(root string, ts time.Time) string {
	return TargetDirectory(root, ts, p.loc)
}

// EnsureDirectory creates dir and its parents when absent. It returns true when
// the directory did not exist. With dryRun nothing is created, but the return
// value still tells the caller whether a creation would have happened.
func (p *Planner) EnsureDirectory(ctx context.Context, dir string, dryRun bool) (bool, error) {
	exists, err := p.backend.Exists(ctx, dir)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if dryRun {
		return true, nil
	}
	if err := p.backend.MkdirAll(ctx, dir); err != nil {
		return false, err
	}
	return true, nil
}

// NextAvailableName returns base_NNN+ext with the lowest NNN, starting at 001,
// that does not exist in dir. The counter widens past 999.
func (p *Planner) NextAvailableName(ctx context.Context, base, ext, dir string) (string, error) {
	for counter := 1; ; counter++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		name := fmt.Sprintf("%s_%03d%s", base, counter, ext)
		exists, err := p.backend.Exists(ctx, filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		if !exists {
			return name, nil
		}
	}
}

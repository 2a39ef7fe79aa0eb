package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Local is a filesystem-based storage backend built on afero.
// The OS filesystem is used in production, afero.MemMapFs in tests.
type Local struct {
	fs afero.Fs

	// changeTime looks up the inode change time; nil when the filesystem has none
	changeTime func(path string) (time.Time, bool)
}

// NewLocal creates a backend on the real operating system filesystem
func NewLocal() *Local {
	return NewLocalFs(afero.NewOsFs())
}

// NewLocalFs creates a backend on any afero filesystem.
// Change times are only read from the OS filesystem.
func NewLocalFs(fs afero.Fs) *Local {
	l := &Local{fs: fs}
	if _, ok := fs.(*afero.OsFs); ok {
		l.changeTime = osChangeTime
	}
	return l
}

// Fs exposes the underlying afero filesystem
func (l *Local) Fs() afero.Fs {
	return l.fs
}

// Walk visits every entry below root without following symlinks
func (l *Local) Walk(ctx context.Context, root string, fn WalkFunc) error {
	return afero.Walk(l.fs, root, func(p string, info os.FileInfo, err error) error {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info == nil {
			return fn(p, nil, err)
		}
		return fn(p, l.toFileInfo(p, info, false), err)
	})
}

// Open opens a file for reading
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Create creates or truncates a file for writing
func (l *Local) Create(ctx context.Context, path string) (io.WriteCloser, error) {
	file, err := l.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return l.toFileInfo(path, info, true), nil
}

// Exists checks if a file or directory exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	ok, err := afero.Exists(l.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return ok, nil
}

// Move renames src to dst. When the two paths live on different devices the
// file is copied (content, permissions and modification time) and src is removed.
func (l *Local) Move(ctx context.Context, src, dst string) error {
	err := l.fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return fmt.Errorf("failed to rename: %w", err)
	}

	if err := l.copyFile(src, dst); err != nil {
		return err
	}
	if err := l.fs.Remove(src); err != nil {
		return fmt.Errorf("copied but failed to remove source: %w", err)
	}
	return nil
}

// Remove deletes a single file
func (l *Local) Remove(ctx context.Context, path string) error {
	if err := l.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}

// MkdirAll creates a directory and all necessary parents
func (l *Local) MkdirAll(ctx context.Context, path string) error {
	if err := l.fs.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}

func (l *Local) toFileInfo(path string, info os.FileInfo, withChangeTime bool) *FileInfo {
	fi := &FileInfo{
		Path:        path,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		IsDir:       info.IsDir(),
		IsRegular:   info.Mode().IsRegular(),
		Permissions: uint32(info.Mode().Perm()),
	}
	if withChangeTime && l.changeTime != nil {
		if ct, ok := l.changeTime(path); ok {
			fi.ChangeTime = ct
		}
	}
	return fi
}

// copyFile copies src to dst, refusing to overwrite an existing dst
func (l *Local) copyFile(src, dst string) (err error) {
	info, err := l.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	in, err := l.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	if err := l.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := l.fs.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer func() {
		if err != nil {
			l.fs.Remove(dst)
		}
	}()

	written, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if written != info.Size() {
		return fmt.Errorf("incomplete copy: expected %d bytes, wrote %d", info.Size(), written)
	}

	if err := l.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}
	return nil
}

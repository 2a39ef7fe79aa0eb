package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file
type FileInfo struct {
	Path        string
	Size        int64
	ModTime     time.Time
	ChangeTime  time.Time // zero when the filesystem does not expose it
	IsDir       bool
	IsRegular   bool
	Permissions uint32
}

// HasChangeTime reports whether the backend supplied an inode change time
func (fi *FileInfo) HasChangeTime() bool {
	return !fi.ChangeTime.IsZero()
}

// WalkFunc is called for every entry visited by Walk.
// A non-nil err reports a failure to stat or read the entry at path;
// info is nil in that case unless the entry is a directory that could not be listed.
type WalkFunc func(path string, info *FileInfo, err error) error

// Backend defines the interface for storage operations.
// Paths are absolute (or relative to the process working directory).
type Backend interface {
	// Walk visits root and everything below it in lexical order without following symlinks
	Walk(ctx context.Context, root string, fn WalkFunc) error

	// Open opens a file for reading
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Create creates or truncates a file for writing
	Create(ctx context.Context, path string) (io.WriteCloser, error)

	// Stat returns file metadata, following symlinks
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Move renames src to dst, copying across devices when a rename is impossible
	Move(ctx context.Context, src, dst string) error

	// Remove deletes a single file
	Remove(ctx context.Context, path string) error

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(ctx context.Context, path string) error

	// Close releases any resources held by the backend
	Close() error
}

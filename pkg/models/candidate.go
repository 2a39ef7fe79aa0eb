package models

import (
	"path/filepath"
	"time"
)

// TimestampSource records which filesystem time a candidate was dated with
type TimestampSource string

const (
	// TimestampChange is the inode change time (ctime)
	TimestampChange TimestampSource = "ctime"
	// TimestampModification is the modification time, used when ctime is unavailable
	TimestampModification TimestampSource = "mtime"
)

// Candidate is a file discovered during the walk whose extension is in the extension set
type Candidate struct {
	// Path is the absolute path in the source tree
	Path string

	// RelativePath is the path relative to the source root
	RelativePath string

	// Extension includes the leading dot
	Extension string

	// Size in bytes at discovery time
	Size int64

	// Timestamp is the time the target date directory derives from.
	// Zero until the mover has stat-ed the file.
	Timestamp time.Time

	// TimestampSource tells whether Timestamp is a change or modification time
	TimestampSource TimestampSource
}

// Name returns the base filename of the candidate
func (c Candidate) Name() string {
	return filepath.Base(c.Path)
}

// Placement is the computed destination of a candidate
type Placement struct {
	// Directory is target-root/YYYY/MM/DD
	Directory string

	// Filename is the name inside Directory
	Filename string
}

// Path returns the full destination path
func (p Placement) Path() string {
	if p.Directory == "" && p.Filename == "" {
		return ""
	}
	return filepath.Join(p.Directory, p.Filename)
}

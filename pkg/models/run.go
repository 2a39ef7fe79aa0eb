package models

import (
	"time"
)

// HashAlgorithm selects the content fingerprint used for duplicate detection
type HashAlgorithm string

const (
	// HashSHA256 fingerprints files with SHA-256
	HashSHA256 HashAlgorithm = "sha256"
	// HashMD5 fingerprints files with MD5 (faster than SHA-256, less collision resistant)
	HashMD5 HashAlgorithm = "md5"
)

// RunConfig is the resolved, read-only configuration of a single relocation run.
// It is built once by the CLI and passed by value to every component that needs it.
type RunConfig struct {
	ID             string
	ExtensionFile  string
	SourcePath     string
	TargetPath     string
	Preview        bool
	Debug          bool
	Location       *time.Location
	Exclude        []string
	HashAlgorithm  HashAlgorithm
	BufferSize     int
	BandwidthLimit int64 // bytes per second, 0 = unlimited
	CreatedAt      time.Time
}

// Validate checks if the run configuration is usable
func (c RunConfig) Validate() error {
	if c.SourcePath == "" {
		return &ValidationError{Field: "SourcePath", Message: "source path is required"}
	}
	if c.TargetPath == "" {
		return &ValidationError{Field: "TargetPath", Message: "target path is required"}
	}
	switch c.HashAlgorithm {
	case HashSHA256, HashMD5:
	default:
		return &ValidationError{Field: "HashAlgorithm", Message: "unsupported hash algorithm: " + string(c.HashAlgorithm)}
	}
	if c.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	if c.BandwidthLimit < 0 {
		return &ValidationError{Field: "BandwidthLimit", Message: "bandwidth limit cannot be negative"}
	}
	return nil
}

// Loc returns the location used for date partitioning, defaulting to local time
func (c RunConfig) Loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

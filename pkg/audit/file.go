package audit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/sdejongh/sortnorris/pkg/models"
)

// Default file names, relative to the working directory
const (
	DefaultIndexFile   = "_Index.txt"
	DefaultVerifyFile  = "_verify.sh"
	DefaultFailureFile = "failure.txt"
)

// Paths locates the three audit logs
type Paths struct {
	Index   string
	Verify  string
	Failure string
}

// DefaultPaths returns the fixed log names
func DefaultPaths() Paths {
	return Paths{
		Index:   DefaultIndexFile,
		Verify:  DefaultVerifyFile,
		Failure: DefaultFailureFile,
	}
}

// FileSink writes the index, verify script and failure log.
// Every record is written straight to its file so an interrupted run keeps
// all completed records.
type FileSink struct {
	mu      sync.Mutex
	index   afero.File
	verify  afero.File
	failure afero.File
}

// OpenFileSink truncates (or creates) the three logs and opens them for appending
func OpenFileSink(fs afero.Fs, paths Paths) (*FileSink, error) {
	s := &FileSink{}

	var err error
	if s.index, err = openTruncated(fs, paths.Index); err != nil {
		return nil, err
	}
	if s.verify, err = openTruncated(fs, paths.Verify); err != nil {
		s.index.Close()
		return nil, err
	}
	if s.failure, err = openTruncated(fs, paths.Failure); err != nil {
		s.index.Close()
		s.verify.Close()
		return nil, err
	}

	return s, nil
}

func openTruncated(fs afero.Fs, path string) (afero.File, error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log %s: %w", path, err)
	}
	return f, nil
}

// RecordAction appends an index line
func (s *FileSink) RecordAction(source string, action models.Action) error {
	line, err := FormatAction(source, action)
	if err != nil {
		return err
	}
	return s.writeLine(&s.index, line)
}

// RecordVerification appends an ls -l command
func (s *FileSink) RecordVerification(target string) error {
	return s.writeLine(&s.verify, FormatVerification(target))
}

// RecordFailure appends a failure line
func (s *FileSink) RecordFailure(source, target, message string) error {
	return s.writeLine(&s.failure, FormatFailure(source, target, message))
}

// Close closes all three logs
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, f := range []afero.File{s.index, s.verify, s.failure} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.index, s.verify, s.failure = nil, nil, nil
	return errors.Join(errs...)
}

func (s *FileSink) writeLine(f *afero.File, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if *f == nil {
		return errors.New("audit sink is closed")
	}
	if _, err := io.WriteString(*f, line+"\n"); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

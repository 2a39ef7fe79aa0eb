package audit

import (
	"sync"

	"github.com/sdejongh/sortnorris/pkg/models"
)

// MemorySink keeps records in memory, formatted exactly as FileSink writes them
type MemorySink struct {
	mu       sync.Mutex
	index    []string
	verify   []string
	failures []string
	closed   bool
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// RecordAction stores an index line
func (s *MemorySink) RecordAction(source string, action models.Action) error {
	line, err := FormatAction(source, action)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = append(s.index, line)
	return nil
}

// RecordVerification stores a verify command
func (s *MemorySink) RecordVerification(target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verify = append(s.verify, FormatVerification(target))
	return nil
}

// RecordFailure stores a failure line
func (s *MemorySink) RecordFailure(source, target, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, FormatFailure(source, target, message))
	return nil
}

// Close marks the sink closed
func (s *MemorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Index returns a copy of the index lines
func (s *MemorySink) Index() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.index...)
}

// Verify returns a copy of the verify commands
func (s *MemorySink) Verify() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.verify...)
}

// Failures returns a copy of the failure lines
func (s *MemorySink) Failures() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.failures...)
}

// Closed reports whether Close was called
func (s *MemorySink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

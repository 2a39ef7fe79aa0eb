package audit

import "github.com/sdejongh/sortnorris/pkg/models"

// NullSink discards every record and touches no file.
// Used in preview mode.
type NullSink struct{}

// NewNullSink creates a new null sink
func NewNullSink() *NullSink {
	return &NullSink{}
}

// RecordAction does nothing
func (s *NullSink) RecordAction(source string, action models.Action) error { return nil }

// RecordVerification does nothing
func (s *NullSink) RecordVerification(target string) error { return nil }

// RecordFailure does nothing
func (s *NullSink) RecordFailure(source, target, message string) error { return nil }

// Close does nothing
func (s *NullSink) Close() error { return nil }

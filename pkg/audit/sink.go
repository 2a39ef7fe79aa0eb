package audit

import (
	"fmt"
	"strings"

	"github.com/sdejongh/sortnorris/pkg/models"
)

// Sink receives the durable records of a run.
// Implementations include the three-file sink, a null sink for preview
// runs and an in-memory sink.
type Sink interface {
	// RecordAction appends an index line for a successful move or deletion
	RecordAction(source string, action models.Action) error

	// RecordVerification appends a listing command for a moved file
	RecordVerification(target string) error

	// RecordFailure appends a failure line; target may be empty
	RecordFailure(source, target, message string) error

	// Close flushes and closes the sink
	Close() error
}

// FormatAction returns the index line for an action, without newline
func FormatAction(source string, action models.Action) (string, error) {
	switch action {
	case models.ActionMoved:
		return source + " -> Moved", nil
	case models.ActionDeleted:
		return source + " -> Deleted (Duplicate Found)", nil
	default:
		return "", fmt.Errorf("action %q is not recorded in the index", action)
	}
}

// FormatVerification returns a shell command listing target, without newline
func FormatVerification(target string) string {
	return "ls -l " + shellQuote(target)
}

// FormatFailure returns the failure line, without newline
func FormatFailure(source, target, message string) string {
	if target != "" {
		return fmt.Sprintf("Failure: %s -> Source: %s, Target: %s", message, source, target)
	}
	return fmt.Sprintf("Failure: %s -> Source: %s", message, source)
}

// shellQuote wraps s in single quotes, escaping embedded single quotes
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

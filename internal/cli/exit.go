package cli

import "fmt"

// ExitError carries the process exit code of a failed command.
// Err may be nil when the failure was already reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// usageFailure is exit status 1 for bad input
func usageFailure(err error) *ExitError {
	return &ExitError{Code: 1, Err: err}
}

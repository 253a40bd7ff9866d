package cli

import "fmt"

// ExitError carries a process exit code up through the command error
// path, so deferred cleanup (backend Close, formatter flush) runs
// before the process terminates.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap exposes the underlying failure, if any
func (e *ExitError) Unwrap() error {
	return e.Err
}

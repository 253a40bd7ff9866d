package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError(t *testing.T) {
	cause := errors.New("walk failed")
	err := &ExitError{Code: 2, Err: cause}

	if err.Error() != "walk failed" {
		t.Errorf("Error() = %q, want the underlying message", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through to the cause")
	}

	var exitErr *ExitError
	wrapped := fmt.Errorf("compare: %w", err)
	if !errors.As(wrapped, &exitErr) || exitErr.Code != 2 {
		t.Errorf("errors.As failed to recover the exit code from %v", wrapped)
	}
}

func TestExitErrorWithoutCause(t *testing.T) {
	err := &ExitError{Code: 1}
	if err.Error() != "exit status 1" {
		t.Errorf("Error() = %q, want %q", err.Error(), "exit status 1")
	}
	if err.Unwrap() != nil {
		t.Error("Unwrap should be nil without a cause")
	}
}

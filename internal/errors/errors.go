package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit statuses.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2   // the run exceeded -timeout
	ExitErrorMismatch = 3   // two runs produced different sums
	ExitErrorConfig   = 4   // bad flags, environment or input size
	ExitErrorCanceled = 130 // SIGINT or SIGTERM
)

// ConfigError is a problem with the flags or environment the user supplied.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError the way fmt.Sprintf would.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// TrialError records the failure of one strategy during one benchmark trial
// while preserving the original cause.
type TrialError struct {
	// Trial is the 1-based trial number.
	Trial int
	// Strategy is the name of the summation strategy that failed.
	Strategy string
	Cause    error
}

func (e TrialError) Error() string {
	return fmt.Sprintf("trial %d (%s): %v", e.Trial, e.Strategy, e.Cause)
}

func (e TrialError) Unwrap() error { return e.Cause }

// MismatchError reports a run whose sum differs from the first successful
// run of the benchmark.
type MismatchError struct {
	Trial    int
	Expected int
	Got      int
	Strategy string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("trial %d: %s returned %d, expected %d", e.Trial, e.Strategy, e.Got, e.Expected)
}

// TimeoutError is returned in place of context.DeadlineExceeded when the
// configured limit is known.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError rejects an input value, such as a negative dataset size.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted message, keeping it reachable by
// errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the exit status the process should report.
func ExitCode(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		mismatchErr   MismatchError
		timeoutErr    TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

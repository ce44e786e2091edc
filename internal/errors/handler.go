package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing errors.
// The cli package provides the themed implementation.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleTrialError prints a user-facing description of err and returns the
// matching exit code. A nil err prints nothing and returns ExitSuccess.
//
// Parameters:
//   - err: The error raised while benchmarking.
//   - elapsed: How long the benchmark ran before failing.
//   - out: The writer for the message.
//   - colors: The color provider.
//
// Returns:
//   - int: The exit code for the process.
func HandleTrialError(err error, elapsed time.Duration, out io.Writer, colors ColorProvider) int {
	code := ExitCode(err)
	switch code {
	case ExitSuccess:
		return code
	case ExitErrorTimeout:
		limit := "its time limit"
		var timeoutErr TimeoutError
		if errors.As(err, &timeoutErr) {
			limit = fmt.Sprintf("its %s time limit", timeoutErr.Limit)
		}
		fmt.Fprintf(out, "%sStatus: Timeout. The benchmark exceeded %s after %s.%s\n",
			colors.Red(), limit, elapsed, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled by user after %s.%s\n",
			colors.Yellow(), elapsed, colors.Reset())
	case ExitErrorMismatch:
		fmt.Fprintf(out, "%sStatus: CRITICAL ERROR! %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}

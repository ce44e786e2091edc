package orchestration

import (
	"io"
	"sync"
	"time"
)

// TrialResult encapsulates the outcome of one strategy run within a trial.
// It serves as the shared domain type between orchestration and presentation layers.
type TrialResult struct {
	// Trial is the 1-based trial number.
	Trial int
	// Strategy is the name of the summation strategy (e.g., "parallel").
	Strategy string
	// Sum is the computed total. It is meaningless if Err is set.
	Sum int
	// Duration is the wall-clock time of the summation alone.
	Duration time.Duration
	// Err contains any error raised by the run.
	Err error
}

// TrialProgress is sent once per completed strategy run.
type TrialProgress struct {
	Trial    int
	Strategy string
	Duration time.Duration
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N           int
	Parallelism int
	Verbose     bool
}

// ProgressReporter defines the interface for displaying benchmark progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation (spinners,
// progress bars) while the orchestration layer runs the trials.
type ProgressReporter interface {
	// DisplayProgress consumes progress updates until progressChan is closed.
	// It is called in a separate goroutine and must call wg.Done on return.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving one update per completed run.
	//   - totalRuns: The number of runs expected (trials x strategies).
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan TrialProgress, totalRuns int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan TrialProgress, totalRuns int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan TrialProgress, totalRuns int, out io.Writer) {
	f(wg, progressChan, totalRuns, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan TrialProgress, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting benchmark results,
// allowing different output formats without modifying the orchestration
// logic.
type ResultPresenter interface {
	// PresentTrialTable displays one row per strategy run.
	PresentTrialTable(results []TrialResult, out io.Writer)

	// PresentSummary displays the aggregated comparison.
	PresentSummary(summary Summary, opts PresentationOptions, out io.Writer)

	// HandleError prints err and returns the matching exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}

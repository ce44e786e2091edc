package orchestration

import (
	"time"

	"github.com/agbru/accbench/internal/format"
)

// ProgressAggregator turns the stream of completed runs into an overall
// fraction and ETA. Both the spinner display and the quiet logger use it.
type ProgressAggregator struct {
	state     *format.StepProgress
	totalRuns int
}

// NewProgressAggregator creates a new aggregator for the given number of
// runs. Returns nil if totalRuns <= 0.
func NewProgressAggregator(totalRuns int) *ProgressAggregator {
	if totalRuns <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:     format.NewStepProgress(totalRuns),
		totalRuns: totalRuns,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// Trial and Strategy identify the run that completed.
	Trial    int
	Strategy string
	// Fraction is the completed share of all runs (0.0 to 1.0).
	Fraction float64
	// ETA is the estimated time remaining.
	ETA time.Duration
}

// Update records one completed run and returns the aggregated result.
func (a *ProgressAggregator) Update(update TrialProgress) AggregatedProgress {
	fraction, eta := a.state.Advance()
	return AggregatedProgress{
		Trial:    update.Trial,
		Strategy: update.Strategy,
		Fraction: fraction,
		ETA:      eta,
	}
}

// Fraction returns the current completed fraction without updating.
func (a *ProgressAggregator) Fraction() float64 {
	return a.state.Fraction()
}

// ETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) ETA() time.Duration {
	return a.state.ETA()
}

// TotalRuns returns the number of runs being tracked.
func (a *ProgressAggregator) TotalRuns() int {
	return a.totalRuns
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan TrialProgress) {
	for range progressChan {
	}
}

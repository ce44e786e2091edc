//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/accbench/internal/format"
	"github.com/agbru/accbench/internal/orchestration"
	"github.com/agbru/accbench/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner suffix.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts `spinner.Spinner` to the `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner followed by a progress bar, the number of
// completed runs and an ETA until progressChan is closed. It calls wg.Done
// on return.
//
// Parameters:
//   - wg: The WaitGroup to signal on completion.
//   - progressChan: Receives one update per completed run.
//   - totalRuns: The number of runs expected.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.TrialProgress, totalRuns int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(totalRuns)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	s.UpdateSuffix(progressSuffix(0, totalRuns, 0, 0))
	s.Start()
	defer func() {
		s.Stop()
		fmt.Fprintln(out)
	}()

	done := 0
	for update := range progressChan {
		done++
		ap := agg.Update(update)
		s.UpdateSuffix(progressSuffix(done, totalRuns, ap.Fraction, ap.ETA) +
			fmt.Sprintf(" %s(trial %d, %s)%s", ui.ColorCyan(), ap.Trial, ap.Strategy, ui.ColorReset()))
	}
}

func progressSuffix(done, total int, fraction float64, eta time.Duration) string {
	return fmt.Sprintf(" %s %d/%d runs", format.FormatProgressBarWithETA(fraction, eta, ProgressBarWidth), done, total)
}

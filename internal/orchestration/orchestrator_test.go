package orchestration

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agbru/accbench/internal/config"
	apperrors "github.com/agbru/accbench/internal/errors"
	"github.com/agbru/accbench/internal/logging"
	"github.com/agbru/accbench/internal/metrics"
)

// MockResultPresenter is a mock implementation of ResultPresenter for testing.
type MockResultPresenter struct {
	tableRows int
	summary   *Summary
}

func (m *MockResultPresenter) PresentTrialTable(results []TrialResult, out io.Writer) {
	m.tableRows = len(results)
}
func (m *MockResultPresenter) PresentSummary(summary Summary, opts PresentationOptions, out io.Writer) {
	m.summary = &summary
}
func (m *MockResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.ExitCode(err)
}

// MockStrategy is a mock implementation of Strategy used for testing the
// orchestration logic without summing real data.
type MockStrategy struct {
	NameValue string
	SumFunc   func(seq []int, init int) (int, error)
	calls     atomic.Int32
}

func (m *MockStrategy) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *MockStrategy) Sum(seq []int, init int) (int, error) {
	m.calls.Add(1)
	if m.SumFunc != nil {
		return m.SumFunc(seq, init)
	}
	return init, nil
}

func testLogger() logging.Logger {
	return logging.NewLogger(io.Discard, "orchestration-test")
}

func TestExecuteTrials(t *testing.T) {
	t.Parallel()

	data := []int{9999, 9999, 9999, 9999, 9999}
	cfg := config.AppConfig{Trials: 3, Init: 1}
	strategies := []Strategy{SequentialStrategy{}, ParallelStrategy{Parallelism: 4}}

	results := ExecuteTrials(context.Background(), data, cfg, strategies,
		NullProgressReporter{}, metrics.NewRecorder(), testLogger(), io.Discard)

	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, r.Err)
		}
		if r.Sum != 49996 {
			t.Errorf("result %d (%s): sum = %d, want 49996", i, r.Strategy, r.Sum)
		}
		if want := i/2 + 1; r.Trial != want {
			t.Errorf("result %d: trial = %d, want %d", i, r.Trial, want)
		}
	}
	if results[0].Strategy != SequentialName || results[1].Strategy != ParallelName {
		t.Errorf("strategies out of order: %s, %s", results[0].Strategy, results[1].Strategy)
	}
}

func TestExecuteTrials_StrategyFailure(t *testing.T) {
	t.Parallel()

	failing := &MockStrategy{
		NameValue: "broken",
		SumFunc:   func([]int, int) (int, error) { return 0, errors.New("mock error") },
	}
	results := ExecuteTrials(context.Background(), []int{1}, config.AppConfig{Trials: 2}, []Strategy{failing},
		NullProgressReporter{}, nil, testLogger(), io.Discard)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	var trialErr apperrors.TrialError
	if !errors.As(results[0].Err, &trialErr) {
		t.Fatalf("expected TrialError, got %T", results[0].Err)
	}
	if trialErr.Trial != 1 || trialErr.Strategy != "broken" {
		t.Errorf("unexpected TrialError %+v", trialErr)
	}
}

func TestExecuteTrials_EmptyDataset(t *testing.T) {
	t.Parallel()

	results := ExecuteTrials(context.Background(), nil, config.AppConfig{Trials: 1, Init: 42},
		[]Strategy{SequentialStrategy{}, ParallelStrategy{Parallelism: 8}}, NullProgressReporter{}, nil, testLogger(), io.Discard)
	for _, r := range results {
		if r.Err != nil || r.Sum != 42 {
			t.Errorf("%s: got (%d, %v), want (42, nil)", r.Strategy, r.Sum, r.Err)
		}
	}
}

func TestExecuteTrials_DeadlineBecomesTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()

	results := ExecuteTrials(ctx, []int{1}, config.AppConfig{Trials: 3, Timeout: time.Minute}, []Strategy{&MockStrategy{}},
		NullProgressReporter{}, nil, testLogger(), io.Discard)

	if len(results) != 1 {
		t.Fatalf("expected only the timeout marker, got %d results", len(results))
	}
	var timeoutErr apperrors.TimeoutError
	if !errors.As(results[0].Err, &timeoutErr) || timeoutErr.Limit != time.Minute {
		t.Errorf("expected a TimeoutError with the configured limit, got %v", results[0].Err)
	}
	if apperrors.ExitCode(results[0].Err) != apperrors.ExitErrorTimeout {
		t.Errorf("timeout marker should map to the timeout exit code")
	}
}

func TestInterruption(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	tests := []struct {
		name        string
		err         error
		wantTimeout bool
		wantSame    bool
	}{
		{"deadline", context.DeadlineExceeded, true, false},
		{"wrapped deadline", apperrors.WrapError(context.DeadlineExceeded, "filling dataset"), true, false},
		{"canceled", context.Canceled, false, true},
		{"other", boom, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Interruption(tt.err, 45*time.Second)
			var timeoutErr apperrors.TimeoutError
			if isTimeout := errors.As(got, &timeoutErr); isTimeout != tt.wantTimeout {
				t.Fatalf("Interruption(%v) = %v, TimeoutError = %v", tt.err, got, isTimeout)
			}
			if tt.wantTimeout && timeoutErr.Limit != 45*time.Second {
				t.Errorf("Limit = %s, want 45s", timeoutErr.Limit)
			}
			if tt.wantSame && got != tt.err {
				t.Errorf("Interruption(%v) = %v, want the error unchanged", tt.err, got)
			}
		})
	}
}

func TestExecuteTrials_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := &MockStrategy{}
	s.SumFunc = func([]int, int) (int, error) {
		if s.calls.Load() == 2 {
			cancel()
		}
		return 0, nil
	}

	results := ExecuteTrials(ctx, []int{1}, config.AppConfig{Trials: 10}, []Strategy{s},
		NullProgressReporter{}, nil, testLogger(), io.Discard)

	if len(results) != 3 {
		t.Fatalf("expected 2 runs plus the cancellation marker, got %d", len(results))
	}
	last := results[len(results)-1]
	if !errors.Is(last.Err, context.Canceled) {
		t.Errorf("last result should carry context.Canceled, got %v", last.Err)
	}
	if s.calls.Load() != 2 {
		t.Errorf("strategy ran %d times after cancellation, want 2", s.calls.Load())
	}
}

func TestExecuteTrials_ReportsEveryRun(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var seen []TrialProgress
	var total int
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan TrialProgress, totalRuns int, _ io.Writer) {
		defer wg.Done()
		mu.Lock()
		total = totalRuns
		mu.Unlock()
		for p := range ch {
			mu.Lock()
			seen = append(seen, p)
			mu.Unlock()
		}
	})

	ExecuteTrials(context.Background(), []int{1, 2, 3}, config.AppConfig{Trials: 4},
		[]Strategy{SequentialStrategy{}, ParallelStrategy{}}, reporter, nil, testLogger(), io.Discard)

	mu.Lock()
	defer mu.Unlock()
	if total != 8 || len(seen) != 8 {
		t.Errorf("reporter saw %d of %d updates, want 8 of 8", len(seen), total)
	}
}

func TestExecuteTrials_LogsPartition(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	logger := logging.NewLogger(&buf, "orchestration-test")
	ExecuteTrials(context.Background(), []int{1, 2, 3, 4, 5, 6, 7}, config.AppConfig{Trials: 1},
		[]Strategy{ParallelStrategy{Parallelism: 3, Logger: logger}}, NullProgressReporter{}, nil, logger, io.Discard)

	out := buf.String()
	if !strings.Contains(out, `"blocks":3`) || !strings.Contains(out, `"last_block_size":3`) {
		t.Errorf("partition debug log missing, got %s", out)
	}
}

// TestAnalyzeTrialResults verifies the consistency checks applied to a set
// of runs.
func TestAnalyzeTrialResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		results        []TrialResult
		expectedStatus int
		wantSummary    bool
	}{
		{
			name: "All success",
			results: []TrialResult{
				{Trial: 1, Strategy: SequentialName, Sum: 5, Duration: 2 * time.Millisecond},
				{Trial: 1, Strategy: ParallelName, Sum: 5, Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
			wantSummary:    true,
		},
		{
			name: "Mismatch",
			results: []TrialResult{
				{Trial: 1, Strategy: SequentialName, Sum: 5, Duration: time.Millisecond},
				{Trial: 1, Strategy: ParallelName, Sum: 6, Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "One failure fails the run",
			results: []TrialResult{
				{Trial: 1, Strategy: SequentialName, Sum: 5, Duration: time.Millisecond},
				{Trial: 1, Strategy: ParallelName, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
		{
			name: "Timeout",
			results: []TrialResult{
				{Trial: 1, Strategy: SequentialName, Sum: 5, Duration: time.Millisecond},
				{Trial: 2, Strategy: SequentialName, Err: context.DeadlineExceeded},
			},
			expectedStatus: apperrors.ExitErrorTimeout,
		},
		{
			name:           "No results",
			results:        nil,
			expectedStatus: apperrors.ExitErrorGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			presenter := &MockResultPresenter{}
			status := AnalyzeTrialResults(tt.results, PresentationOptions{}, presenter, io.Discard)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
			if presenter.tableRows != len(tt.results) {
				t.Errorf("table rows = %d, want %d", presenter.tableRows, len(tt.results))
			}
			if (presenter.summary != nil) != tt.wantSummary {
				t.Errorf("summary presented = %v, want %v", presenter.summary != nil, tt.wantSummary)
			}
		})
	}
}

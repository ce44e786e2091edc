package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/accbench/internal/config"
	apperrors "github.com/agbru/accbench/internal/errors"
	"github.com/agbru/accbench/internal/logging"
	"github.com/agbru/accbench/internal/metrics"
)

const tracerName = "github.com/agbru/accbench/internal/orchestration"

// ExecuteTrials times every strategy cfg.Trials times over the same data.
//
// Strategies run one after the other, never concurrently, so that each one
// has the whole machine to itself. Each trial is wrapped in a tracing span.
// When ctx is done the loop stops and a final result carrying the context
// error is appended so that callers can tell a short run from a complete one.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - data: The dataset, shared read-only by every run.
//   - cfg: The application configuration (Trials, Init).
//   - strategies: The strategies to compare.
//   - progressReporter: Displays progress (use NullProgressReporter for quiet mode).
//   - recorder: Receives per-run metrics; may be nil.
//   - logger: Receives per-run debug logs and failures.
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []TrialResult: One entry per completed run, in execution order.
func ExecuteTrials(ctx context.Context, data []int, cfg config.AppConfig, strategies []Strategy,
	progressReporter ProgressReporter, recorder *metrics.Recorder, logger logging.Logger, out io.Writer) []TrialResult {
	totalRuns := cfg.Trials * len(strategies)
	results := make([]TrialResult, 0, totalRuns)
	progressChan := make(chan TrialProgress, totalRuns)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, totalRuns, out)

	tracer := otel.Tracer(tracerName)

trials:
	for trial := 1; trial <= cfg.Trials; trial++ {
		trialCtx, span := tracer.Start(ctx, "trial",
			trace.WithAttributes(attribute.Int("trial", trial), attribute.Int("elements", len(data))))
		for _, s := range strategies {
			if err := trialCtx.Err(); err != nil {
				results = append(results, TrialResult{Trial: trial, Strategy: s.Name(), Err: Interruption(err, cfg.Timeout)})
				span.SetStatus(codes.Error, "canceled")
				span.End()
				break trials
			}
			res := runStrategy(trial, s, data, cfg.Init)
			span.AddEvent(s.Name(), trace.WithAttributes(
				attribute.Int64("duration_ns", res.Duration.Nanoseconds()),
				attribute.Int("sum", res.Sum),
			))
			recorder.ObserveTrial(s.Name(), res.Duration, res.Err)
			if res.Err != nil {
				span.RecordError(res.Err)
				span.SetStatus(codes.Error, res.Err.Error())
				logger.Error("trial failed", res.Err, logging.Int("trial", trial), logging.String("strategy", s.Name()))
			} else {
				logger.Debug("trial completed",
					logging.Int("trial", trial),
					logging.String("strategy", s.Name()),
					logging.Duration("duration", res.Duration),
					logging.Int("sum", res.Sum),
				)
			}
			results = append(results, res)
			progressChan <- TrialProgress{Trial: trial, Strategy: s.Name(), Duration: res.Duration}
		}
		span.End()
	}

	close(progressChan)
	displayWg.Wait()

	return results
}

// Interruption turns an expired run deadline into a TimeoutError naming the
// configured limit. Any other error, cancellation included, is returned as is.
func Interruption(err error, limit time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "benchmark", Limit: limit}
	}
	return err
}

func runStrategy(trial int, s Strategy, data []int, init int) TrialResult {
	start := time.Now()
	sum, err := s.Sum(data, init)
	res := TrialResult{Trial: trial, Strategy: s.Name(), Sum: sum, Duration: time.Since(start)}
	if err != nil {
		res.Err = apperrors.TrialError{Trial: trial, Strategy: s.Name(), Cause: err}
	}
	return res
}

// AnalyzeTrialResults validates the runs and presents them.
//
// A benchmark only succeeds as a whole: any failed run, or any sum that
// differs from the first successful one, fails the analysis. On success the
// per-strategy summary is presented.
//
// Parameters:
//   - results: The runs returned by ExecuteTrials.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeTrialResults(results []TrialResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	presenter.PresentTrialTable(results, out)

	var firstError error
	var reference *TrialResult
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		if reference == nil {
			reference = &results[i]
		}
	}

	if firstError != nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. Not every trial could complete.\n")
		return presenter.HandleError(firstError, totalDuration(results), out)
	}
	if reference == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No trial was run.\n")
		return apperrors.ExitErrorGeneric
	}

	if err := verifySums(results, reference.Sum); err != nil {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the strategies: %v\n", err)
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All sums are consistent.\n")
	presenter.PresentSummary(Summarize(results), opts, out)
	return apperrors.ExitSuccess
}

// verifySums returns a MismatchError for the first run whose sum differs
// from expected.
func verifySums(results []TrialResult, expected int) error {
	for _, r := range results {
		if r.Err == nil && r.Sum != expected {
			return apperrors.MismatchError{Trial: r.Trial, Strategy: r.Strategy, Expected: expected, Got: r.Sum}
		}
	}
	return nil
}

func totalDuration(results []TrialResult) time.Duration {
	var total time.Duration
	for _, r := range results {
		total += r.Duration
	}
	return total
}

package app

import (
	"context"
	"io"
	"time"

	"github.com/agbru/accbench/internal/accumulate"
	"github.com/agbru/accbench/internal/calibration"
	"github.com/agbru/accbench/internal/cli"
	"github.com/agbru/accbench/internal/dataset"
	apperrors "github.com/agbru/accbench/internal/errors"
	"github.com/agbru/accbench/internal/logging"
	"github.com/agbru/accbench/internal/metrics"
	"github.com/agbru/accbench/internal/orchestration"
	"github.com/agbru/accbench/internal/server"
)

// runBenchmark generates the dataset, times both strategies and reports.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	start := time.Now()
	cfg := a.Config

	parallelism := cfg.Parallelism
	if cached, ok := calibration.LoadCachedCalibration(cfg); ok {
		parallelism = cached
		a.Logger.Info("using calibrated parallelism", logging.Int("parallelism", cached))
	}
	effective := parallelism
	if effective <= 0 {
		effective = accumulate.AvailableParallelism()
	}

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()

	data, err := dataset.Generate(ctx, cfg.N, cfg.Value)
	if err != nil {
		return apperrors.HandleTrialError(orchestration.Interruption(err, cfg.Timeout), time.Since(start), a.ErrWriter, cli.CLIColorProvider{})
	}
	a.Logger.Debug("dataset generated", logging.Int("elements", len(data)), logging.Duration("elapsed", time.Since(start)))

	strategies := []orchestration.Strategy{
		orchestration.SequentialStrategy{},
		orchestration.ParallelStrategy{Parallelism: parallelism, Logger: a.Logger},
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if cfg.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	} else {
		cli.PrintExecutionConfig(cfg, parallelism, out)
		cli.PrintExecutionMode(strategies, out)
	}

	recorder := metrics.NewRecorder()
	recorder.SetParallelism(effective)

	if cfg.MetricsAddr != "" {
		srv := server.New(cfg.MetricsAddr, recorder.Handler(), a.Logger)
		if _, err := srv.Start(); err != nil {
			a.Logger.Error("could not start metrics server", err)
			return apperrors.ExitErrorGeneric
		}
		defer func() {
			if err := srv.Shutdown(context.Background()); err != nil {
				a.Logger.Error("metrics server shutdown failed", err)
			}
		}()
	}

	results := orchestration.ExecuteTrials(ctx, data, cfg, strategies, progressReporter, recorder, a.Logger, progressOut)
	after := mem.Snapshot()

	opts := orchestration.PresentationOptions{N: cfg.N, Parallelism: effective, Verbose: cfg.Verbose}
	summary := orchestration.Summarize(results)
	if summary.HasSpeedup {
		a.Logger.Debug("benchmark finished", logging.Int("results", len(results)), logging.Float64("speedup", summary.Speedup))
	}
	var code int
	if cfg.Quiet {
		code = orchestration.AnalyzeTrialResults(results, opts, quietPresenter{out: out, errOut: a.ErrWriter}, io.Discard)
	} else {
		code = orchestration.AnalyzeTrialResults(results, opts, cli.CLIResultPresenter{}, out)
		if cfg.Verbose {
			cli.DisplayMemoryStats(metrics.Delta(before, after), out)
		}
	}

	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			a.Logger.Error("could not write metrics file", err, logging.String("path", cfg.MetricsFile))
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		}
	}

	if code == apperrors.ExitSuccess && cfg.OutputFile != "" {
		outputCfg := cli.OutputConfig{OutputFile: cfg.OutputFile, Quiet: cfg.Quiet}
		if err := cli.WriteReportToFile(results, summary, opts, outputCfg); err != nil {
			a.Logger.Error("could not write report", err, logging.String("path", cfg.OutputFile))
			return apperrors.ExitErrorGeneric
		}
		if !cfg.Quiet {
			cli.DisplayReportSaved(out, cfg.OutputFile)
		}
	}

	return code
}

// quietPresenter prints only the machine-readable summary on out and
// failures on errOut.
type quietPresenter struct {
	out    io.Writer
	errOut io.Writer
}

func (quietPresenter) PresentTrialTable([]orchestration.TrialResult, io.Writer) {}

func (p quietPresenter) PresentSummary(summary orchestration.Summary, _ orchestration.PresentationOptions, _ io.Writer) {
	cli.DisplayQuietResult(p.out, summary)
}

func (p quietPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return cli.CLIResultPresenter{}.HandleError(err, duration, p.errOut)
}

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/accbench/internal/calibration"
	"github.com/agbru/accbench/internal/cli"
	"github.com/agbru/accbench/internal/config"
	"github.com/agbru/accbench/internal/dataset"
	apperrors "github.com/agbru/accbench/internal/errors"
	"github.com/agbru/accbench/internal/logging"
	"github.com/agbru/accbench/internal/orchestration"
	"github.com/agbru/accbench/internal/ui"
)

// Application represents the accbench application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the console logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}

	programName := "accbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = newConsoleLogger(cfg, errWriter)
	}
	return app, nil
}

// newConsoleLogger builds the human-readable logger written to errWriter.
// -verbose lowers the level to debug.
func newConsoleLogger(cfg config.AppConfig, errWriter io.Writer) logging.Logger {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: errWriter, NoColor: cfg.NoColor, TimeFormat: "15:04:05"}
	return logging.NewZerologAdapter(zerolog.New(out).Level(level).With().Timestamp().Logger())
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}
	return a.runBenchmark(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration sweeps parallelism degrees over a freshly generated dataset.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	data, err := dataset.Generate(ctx, a.Config.N, a.Config.Value)
	if err != nil {
		return apperrors.HandleTrialError(orchestration.Interruption(err, a.Config.Timeout), 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	if _, err := calibration.RunCalibration(ctx, a.Config, data, a.Logger, out); err != nil {
		if !apperrors.IsContextError(err) {
			a.Logger.Error("calibration failed", err)
		}
		return apperrors.HandleTrialError(orchestration.Interruption(err, a.Config.Timeout), 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// Package config parses the command line and environment into an AppConfig.
package config

import (
	"flag"
	"io"
	"time"

	apperrors "github.com/agbru/accbench/internal/errors"
)

// EnvPrefix prefixes every environment variable read by the application.
const EnvPrefix = "ACCBENCH_"

// Defaults mirror the reference benchmark: 100 million copies of 9999
// summed ten times.
const (
	DefaultN       = 100_000_000
	DefaultValue   = 9999
	DefaultTrials  = 10
	DefaultTimeout = 5 * time.Minute
)

// AppConfig holds the fully resolved configuration of one run.
type AppConfig struct {
	// N is the number of elements in the dataset.
	N int
	// Value is the value of every dataset element.
	Value int
	// Init is the seed of both folds.
	Init int
	// Trials is how many times each strategy is timed.
	Trials int
	// Parallelism forces the number of blocks; 0 asks the environment.
	Parallelism int
	// ParallelismForced is set when -parallelism, -p or ACCBENCH_PARALLELISM
	// supplied the degree, including an explicit 0.
	ParallelismForced bool
	// Timeout bounds the whole run.
	Timeout time.Duration

	Calibrate          bool
	CalibrationProfile string

	Quiet    bool
	Verbose  bool
	NoColor  bool
	Theme    string
	LogLevel string

	// OutputFile receives a plain-text report when non-empty.
	OutputFile string
	// MetricsFile receives a Prometheus textfile when non-empty.
	MetricsFile string
	// MetricsAddr serves live Prometheus metrics during the run when non-empty.
	MetricsAddr string
	// Completion selects a shell for completion script generation.
	Completion string
}

// ParseConfig parses args into an AppConfig. Values come from, in order of
// priority, the command line, ACCBENCH_* environment variables and the
// built-in defaults. A -h/--help request returns flag.ErrHelp.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments without the program name.
//   - errorWriter: Receives usage and parse errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: A parse error, flag.ErrHelp, or a ConfigError from validation.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.IntVar(&config.N, "n", DefaultN, "Number of elements to sum.")
	fs.IntVar(&config.Value, "value", DefaultValue, "Value of every element.")
	fs.IntVar(&config.Init, "init", 0, "Initial value of the sum.")
	fs.IntVar(&config.Trials, "trials", DefaultTrials, "Number of timed trials per strategy.")
	fs.IntVar(&config.Parallelism, "parallelism", 0, "Number of blocks for the parallel sum (0 = available CPUs).")
	fs.IntVar(&config.Parallelism, "p", 0, "Shorthand for -parallelism.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the whole run.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Sweep parallelism degrees and save the fastest one.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Calibration profile path (default ~/.accbench_calibration.json).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the final sums and averages.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print memory statistics and debug logs.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Theme, "theme", "dark", "Color theme (dark, light, none).")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level (debug, info, warn, error).")
	fs.StringVar(&config.OutputFile, "output", "", "Write a report to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for -output.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run (e.g. :9464).")
	fs.StringVar(&config.Completion, "completion", "", "Generate a completion script (bash, zsh, fish).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "parallelism" || f.Name == "p" {
			config.ParallelismForced = true
		}
	})

	if err := config.Validate(); err != nil {
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	switch {
	case c.N < 0:
		return apperrors.NewConfigError("-n must be non-negative, got %d", c.N)
	case c.Trials < 1:
		return apperrors.NewConfigError("-trials must be at least 1, got %d", c.Trials)
	case c.Parallelism < 0:
		return apperrors.NewConfigError("-parallelism must be non-negative, got %d", c.Parallelism)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("-timeout must be positive, got %s", c.Timeout)
	case c.Quiet && c.Verbose:
		return apperrors.NewConfigError("-quiet and -verbose are mutually exclusive")
	}
	switch c.Theme {
	case "dark", "light", "none":
	default:
		return apperrors.NewConfigError("unknown theme %q (accepted values: dark, light, none)", c.Theme)
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish":
	default:
		return apperrors.NewConfigError("unsupported completion shell %q", c.Completion)
	}
	return nil
}

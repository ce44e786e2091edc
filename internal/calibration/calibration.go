package calibration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/accbench/internal/accumulate"
	"github.com/agbru/accbench/internal/config"
	apperrors "github.com/agbru/accbench/internal/errors"
	"github.com/agbru/accbench/internal/logging"
	"github.com/agbru/accbench/internal/orchestration"
)

// DefaultRounds is how many times each degree is timed; the fastest round
// is kept.
const DefaultRounds = 3

// MaxProfileAge is how long a saved profile is trusted.
const MaxProfileAge = 7 * 24 * time.Hour

// ErrNoSuccessfulDegree is returned when every degree failed.
var ErrNoSuccessfulDegree = errors.New("calibration: no parallelism degree completed")

// calibrationResult is the best timing observed for one degree.
type calibrationResult struct {
	Parallelism int
	Duration    time.Duration
	Err         error
}

// sweep times the parallel strategy at each degree and returns the fastest
// successful one. Rounds below 1 are treated as 1.
func sweep(ctx context.Context, data []int, degrees []int, rounds int, logger logging.Logger) (int, []calibrationResult, error) {
	rounds = max(rounds, 1)
	results := make([]calibrationResult, 0, len(degrees))
	best, bestDuration := 0, time.Duration(0)

	for _, p := range degrees {
		res := calibrationResult{Parallelism: p}
		strategy := orchestration.ParallelStrategy{Parallelism: p}
		for round := 0; round < rounds; round++ {
			if err := ctx.Err(); err != nil {
				return 0, results, apperrors.WrapError(err, "calibration interrupted at parallelism %d", p)
			}
			start := time.Now()
			_, err := strategy.Sum(data, 0)
			elapsed := time.Since(start)
			if err != nil {
				res.Err = err
				break
			}
			if round == 0 || elapsed < res.Duration {
				res.Duration = elapsed
			}
		}
		if res.Err != nil {
			logger.Error("calibration degree failed", res.Err, logging.Int("parallelism", p))
		} else {
			logger.Debug("calibration degree timed",
				logging.Int("parallelism", p), logging.Duration("duration", res.Duration))
			if best == 0 || res.Duration < bestDuration {
				best, bestDuration = p, res.Duration
			}
		}
		results = append(results, res)
	}

	if best == 0 {
		return 0, results, ErrNoSuccessfulDegree
	}
	return best, results, nil
}

// RunCalibration sweeps the parallelism degrees over data, prints the
// results table and saves the optimal degree to the profile at
// cfg.CalibrationProfile (or the default path).
//
// Parameters:
//   - ctx: The context for cancellation.
//   - cfg: The application configuration.
//   - data: The dataset to sum.
//   - logger: Receives per-degree debug logs.
//   - out: The writer for the results table.
//
// Returns:
//   - int: The optimal parallelism degree.
//   - error: A context error, or ErrNoSuccessfulDegree.
func RunCalibration(ctx context.Context, cfg config.AppConfig, data []int, logger logging.Logger, out io.Writer) (int, error) {
	available := accumulate.AvailableParallelism()
	degrees := GenerateParallelismDegrees(available)
	fmt.Fprintf(out, "--- Calibration: %d elements, degrees %v ---\n", len(data), degrees)

	start := time.Now()
	best, results, err := sweep(ctx, data, degrees, DefaultRounds, logger)
	printCalibrationResults(out, results, best)
	if err != nil {
		return 0, err
	}

	profile := NewProfile()
	profile.AvailableParallelism = available
	profile.OptimalParallelism = best
	profile.CalibrationN = len(data)
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	path := profilePath(cfg)
	if err := profile.SaveProfile(path); err != nil {
		logger.Error("could not save calibration profile", err, logging.String("path", path))
	} else {
		logger.Debug("calibration profile saved", logging.String("path", path))
	}

	printCalibrationOutput(best, out)
	return best, nil
}

// LoadCachedCalibration returns the optimal degree from a valid, fresh
// profile. It reports false when the user chose a degree, an explicit 0
// included, or when no usable profile exists.
func LoadCachedCalibration(cfg config.AppConfig) (int, bool) {
	if cfg.ParallelismForced || cfg.Parallelism != 0 {
		return 0, false
	}
	profile, loaded := LoadOrCreateProfile(profilePath(cfg))
	if !loaded || !profile.IsValid() || profile.IsStale(MaxProfileAge) || profile.OptimalParallelism < 1 {
		return 0, false
	}
	return profile.OptimalParallelism, true
}

func profilePath(cfg config.AppConfig) string {
	if cfg.CalibrationProfile != "" {
		return cfg.CalibrationProfile
	}
	return GetDefaultProfilePath()
}

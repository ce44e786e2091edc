// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayQuietResult], [DisplayProgress].
//
//   - Format* and Render* functions return a string without performing I/O.
//     Examples: [FormatQuietResult], [RenderSummaryPanel].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteReportToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/accbench/internal/format"
	"github.com/agbru/accbench/internal/orchestration"
	"github.com/agbru/accbench/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path of the report (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything but the final figures.
	Quiet bool
}

// WriteReportToFile writes a plain-text report of a benchmark: a header,
// every run and the per-strategy summary.
//
// Parameters:
//   - results: The runs of the benchmark.
//   - summary: The aggregated comparison.
//   - opts: Presentation options (N, parallelism).
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportToFile(results []orchestration.TrialResult, summary orchestration.Summary, opts orchestration.PresentationOptions, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(file, "# Parallel Accumulate Benchmark\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Elements: %d\n", opts.N)
	fmt.Fprintf(file, "# Parallelism: %d\n", opts.Parallelism)
	fmt.Fprintf(file, "\n")

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(file, "trial %d %s error: %v\n", r.Trial, r.Strategy, r.Err)
			continue
		}
		fmt.Fprintf(file, "trial %d %s result %d in %s\n", r.Trial, r.Strategy, r.Sum, format.FormatSeconds(r.Duration))
	}
	fmt.Fprintf(file, "\n%s", FormatQuietResult(summary))

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult formats the summary for scripts: one line per strategy
// with its name, result and average seconds, then the relative gain of the
// parallel strategy when both were measured.
func FormatQuietResult(summary orchestration.Summary) string {
	var b strings.Builder
	for _, st := range summary.Strategies {
		fmt.Fprintf(&b, "%s %d %s\n", st.Name, st.Sum, format.FormatSeconds(st.Average))
	}
	if summary.HasSpeedup {
		fmt.Fprintf(&b, "speedup %s\n", format.FormatSpeedup(summary.Speedup))
	}
	return b.String()
}

// DisplayQuietResult outputs the summary in quiet mode.
func DisplayQuietResult(out io.Writer, summary orchestration.Summary) {
	fmt.Fprint(out, FormatQuietResult(summary))
}

// DisplayReportSaved confirms where the report was written.
func DisplayReportSaved(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/accbench/internal/accumulate"
	"github.com/agbru/accbench/internal/config"
	"github.com/agbru/accbench/internal/format"
	"github.com/agbru/accbench/internal/orchestration"
	"github.com/agbru/accbench/internal/sysmon"
	"github.com/agbru/accbench/internal/ui"
)

// PrintExecutionConfig displays the configuration of the run: dataset,
// trials, timeout, hardware and current system load.
//
// Parameters:
//   - cfg: The application configuration.
//   - parallelism: The degree the parallel strategy will use (0 = auto).
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, parallelism int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Summing %s%s%s copies of %s%d%s (seed %d), %s%d%s trials, timeout %s%s%s.\n",
		ui.ColorMagenta(), format.FormatInt(cfg.N), ui.ColorReset(),
		ui.ColorMagenta(), cfg.Value, ui.ColorReset(), cfg.Init,
		ui.ColorYellow(), cfg.Trials, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	host := sysmon.Probe()
	fmt.Fprintf(out, "Environment: %s%d%s logical processors (%s%d%s available), Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), accumulate.AvailableParallelism(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if host.CPUModel != "" {
		fmt.Fprintf(out, "Processor: %s (%d cores), %s memory.\n",
			host.CPUModel, host.PhysicalCores, format.FormatBytes(host.TotalMemory))
	}
	fmt.Fprintf(out, "System load: CPU %.1f%%, memory %.1f%%.\n", host.CPUPercent, host.MemPercent)
	if host.Noisy() {
		fmt.Fprintf(out, "%sWarning: the host is busy, timings may be noisy.%s\n", ui.ColorYellow(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Parallelism: %s%s%s.\n", ui.ColorCyan(), describeParallelism(parallelism), ui.ColorReset())
}

func describeParallelism(p int) string {
	if p <= 0 {
		return "auto (queried on every call)"
	}
	return fmt.Sprintf("%d blocks", p)
}

// PrintExecutionMode lists the strategies about to be compared.
func PrintExecutionMode(strategies []orchestration.Strategy, out io.Writer) {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = fmt.Sprintf("%s%s%s", ui.ColorGreen(), s.Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: comparing %s.\n", strings.Join(names, " vs "))
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

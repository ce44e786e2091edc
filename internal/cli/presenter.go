package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/accbench/internal/errors"
	"github.com/agbru/accbench/internal/format"
	"github.com/agbru/accbench/internal/metrics"
	"github.com/agbru/accbench/internal/orchestration"
	"github.com/agbru/accbench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with the
// spinner display.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while trials run.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.TrialProgress, totalRuns int, out io.Writer) {
	DisplayProgress(wg, progressChan, totalRuns, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output in the command-line interface.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentTrialTable displays one row per run with the trial number,
// strategy, duration, sum and status. Uses manual padding to correctly
// handle ANSI color codes.
func (CLIResultPresenter) PresentTrialTable(results []orchestration.TrialResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Trials ---\n")

	maxNameLen := len("Strategy")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Strategy))
		maxDurationLen = max(maxDurationLen, len(displayDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sTrial%s   %sStrategy%s%s   %sDuration%s%s   %sResult%s\n",
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Strategy")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s%s%s", ui.ColorGreen(), format.FormatInt(res.Sum), ui.ColorReset())
		}
		duration := displayDuration(res.Duration)
		fmt.Fprintf(out, "%5d   %s%s%s%s   %s%s%s%s   %s\n",
			res.Trial,
			ui.ColorBlue(), res.Strategy, ui.ColorReset(), padRight("", maxNameLen-len(res.Strategy)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// PresentSummary renders the per-strategy averages in a bordered panel.
func (CLIResultPresenter) PresentSummary(summary orchestration.Summary, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, RenderSummaryPanel(summary, opts))
}

// HandleError handles benchmark errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleTrialError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider supplies the active theme's colors to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// RenderSummaryPanel returns the summary as a lipgloss panel styled with
// the current panel theme.
func RenderSummaryPanel(summary orchestration.Summary, opts orchestration.PresentationOptions) string {
	theme := ui.GetCurrentPanelTheme()
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	label := lipgloss.NewStyle().Foreground(theme.Dim).Width(14)
	value := lipgloss.NewStyle().Foreground(theme.Text)

	var rows []string
	rows = append(rows, title.Render(fmt.Sprintf("Summary: %s elements, parallelism %d",
		format.FormatInt(opts.N), opts.Parallelism)))
	for _, st := range summary.Strategies {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			label.Render(st.Name),
			value.Render(fmt.Sprintf("avg %s  min %s  max %s  (%d runs)",
				displayDuration(st.Average), displayDuration(st.Min), displayDuration(st.Max), st.Runs)),
		))
	}
	if len(summary.Strategies) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			label.Render("result"), value.Render(format.FormatInt(summary.Strategies[0].Sum))))
	}
	if summary.HasSpeedup {
		color := theme.Success
		if summary.Speedup < 0 {
			color = theme.Warning
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			label.Render("parallel"),
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(format.FormatSpeedup(summary.Speedup)),
		))
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	return panel.Render(strings.Join(rows, "\n"))
}

// DisplayMemoryStats shows the memory used by a run.
func DisplayMemoryStats(delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(delta.PeakHeapAlloc))
	fmt.Fprintf(out, "  Sys growth:      %s\n", formatSignedBytes(delta.SysGrowth))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.GCPauseNs)/1e6)
}

func formatSignedBytes(n int64) string {
	if n < 0 {
		return "-" + format.FormatBytes(uint64(-n))
	}
	return format.FormatBytes(uint64(n))
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

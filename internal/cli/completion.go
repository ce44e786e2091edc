package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion is one accbench flag as the completion scripts see it.
type FlagCompletion struct {
	Long      string // without the dashes
	Short     string
	Help      string
	Values    []string // suggested values; nil for booleans and free-form values
	ValueName string   // zsh value label
	IsFile    bool
	Section   string // heading in the fish script
}

// flagRegistry must list every flag registered by config.ParseConfig.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Short: "n", Help: "Number of elements to sum", ValueName: "number", Section: "Dataset"},
	{Long: "value", Help: "Value of every element", ValueName: "number", Section: "Dataset"},
	{Long: "init", Help: "Initial value of the sum", ValueName: "number", Section: "Dataset"},
	{Long: "trials", Help: "Number of timed trials", Values: []string{"1", "5", "10", "20"}, ValueName: "count", Section: "Benchmark"},
	{Long: "parallelism", Short: "p", Help: "Number of blocks (0 = auto)", Values: []string{"0", "1", "2", "4", "8", "16"}, ValueName: "degree", Section: "Benchmark"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"1m", "5m", "10m", "30m"}, ValueName: "duration", Section: "Benchmark"},
	{Long: "calibrate", Help: "Sweep parallelism degrees", Section: "Calibration"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file", Section: "Calibration"},
	{Long: "output", Short: "o", Help: "Report file path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "metrics-file", Help: "Prometheus textfile path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "metrics-addr", Help: "Serve live metrics on this address", ValueName: "addr", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts", Section: "Output"},
	{Long: "verbose", Short: "v", Help: "Memory statistics and debug logs", Section: "Output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Output"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "none"}, ValueName: "name", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell", Section: "Completion"},
}

// GenerateCompletion writes the completion script for shell (bash, zsh or
// fish) to out.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// flagNames returns the dashed spellings of f.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func generateBashCompletion(out io.Writer) error {
	var opts, filePatterns []string
	var caseBody strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
		if f.IsFile {
			filePatterns = append(filePatterns, flagNames(f)...)
			continue
		}
		if len(f.Values) > 0 {
			fmt.Fprintf(&caseBody, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(flagNames(f), "|"), strings.Join(f.Values, " "))
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&caseBody, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(filePatterns, "|"))
	}

	script := fmt.Sprintf(`# Bash completion script for accbench
# Add this to your ~/.bashrc or ~/.bash_completion

_accbench_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _accbench_completions accbench
`, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef accbench

# Zsh completion script for accbench
# Add this to your ~/.zshrc or place in $fpath

_accbench() {
    _arguments -s \
%s
}

_accbench "$@"
`, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry renders f for zsh _arguments.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer) error {
	lines := []string{
		"# Fish completion script for accbench",
		"# Add this to ~/.config/fish/completions/accbench.fish",
		"",
		"# Disable file completion by default",
		"complete -c accbench -f",
	}

	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine renders f as a `complete -c accbench` command.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c accbench"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/accbench/internal/errors"
	"github.com/agbru/accbench/internal/logging"
)

func newTestApp(t *testing.T, args ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	profile := filepath.Join(t.TempDir(), "profile.json")
	full := append([]string{"accbench", "-calibration-profile", profile, "-no-color"}, args...)
	app, err := New(full, &errBuf, WithLogger(logging.NewLogger(io.Discard, "app-test")))
	if err != nil {
		t.Fatalf("New(%v): %v\n%s", args, err, errBuf.String())
	}
	return app, &errBuf
}

func TestNew_Help(t *testing.T) {
	t.Parallel()
	_, err := New([]string{"accbench", "-h"}, io.Discard)
	if !IsHelpError(err) {
		t.Errorf("expected help error, got %v", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()
	_, err := New([]string{"accbench", "-trials", "0"}, io.Discard)
	if err == nil || apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
		t.Errorf("expected a config error, got %v", err)
	}
}

func TestNew_DefaultLogger(t *testing.T) {
	t.Parallel()
	app, err := New([]string{"accbench", "-n", "10"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if app.Logger == nil {
		t.Error("New should build a logger when none is given")
	}
}

func TestRun_Quiet(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t, "-n", "100", "-value", "9999", "-trials", "2", "-p", "8", "-q")

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("quiet output should have 3 lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "sequential 999900 ") || !strings.HasPrefix(lines[1], "parallel 999900 ") {
		t.Errorf("unexpected quiet output %q", out.String())
	}
	if !strings.HasPrefix(lines[2], "speedup ") {
		t.Errorf("missing speedup line in %q", out.String())
	}
}

func TestRun_Full(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	report := filepath.Join(dir, "report.txt")
	metricsFile := filepath.Join(dir, "accbench.prom")
	app, _ := newTestApp(t, "-n", "1000", "-value", "3", "-init", "5", "-trials", "2", "-v",
		"-o", report, "-metrics-file", metricsFile)

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{"--- Execution Configuration ---", "--- Trials ---", "Global Status: Success", "3,005", "Memory Stats:", "Report saved to"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
	data, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if !strings.Contains(string(data), `accbench_trials_total{status="ok",strategy="parallel"} 2`) {
		t.Errorf("metrics file missing trial counter:\n%s", data)
	}
	if _, err := os.Stat(report); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestRun_EmptyDataset(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t, "-n", "0", "-init", "42", "-trials", "1", "-q")

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "parallel 42 ") {
		t.Errorf("empty dataset should sum to the seed, got %q", out.String())
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()
	app, errBuf := newTestApp(t, "-n", "100", "-trials", "3", "-q")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := app.Run(ctx, io.Discard); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
	if !strings.Contains(errBuf.String(), "Canceled") {
		t.Errorf("expected a cancellation message, got %q", errBuf.String())
	}
}

func TestRun_DeadlineWhileGenerating(t *testing.T) {
	t.Parallel()
	app, errBuf := newTestApp(t, "-n", "100", "-trials", "3", "-q", "-timeout", "45s")

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	if code := app.Run(ctx, io.Discard); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if !strings.Contains(errBuf.String(), "exceeded its 45s time limit") {
		t.Errorf("timeout message should name the configured limit, got %q", errBuf.String())
	}
}

func TestRun_Completion(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t, "-completion", "fish")

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "complete -c accbench") {
		t.Errorf("unexpected completion output %q", out.String())
	}
}

func TestRun_CalibrateThenReuse(t *testing.T) {
	t.Parallel()
	profile := filepath.Join(t.TempDir(), "profile.json")
	logger := logging.NewLogger(io.Discard, "app-test")

	calibrate, err := New([]string{"accbench", "-calibrate", "-n", "20000", "-no-color", "-calibration-profile", profile}, io.Discard, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if code := calibrate.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("calibration exit code = %d\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "optimal parallelism=") {
		t.Errorf("calibration output missing the optimal degree:\n%s", out.String())
	}
	if _, err := os.Stat(profile); err != nil {
		t.Fatalf("profile not saved: %v", err)
	}

	var logBuf bytes.Buffer
	bench, err := New([]string{"accbench", "-n", "100", "-trials", "1", "-q", "-calibration-profile", profile}, io.Discard,
		WithLogger(logging.NewLogger(&logBuf, "app-test")))
	if err != nil {
		t.Fatal(err)
	}
	if code := bench.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("benchmark exit code = %d", code)
	}
	if !strings.Contains(logBuf.String(), "using calibrated parallelism") {
		t.Errorf("benchmark did not reuse the profile, logs:\n%s", logBuf.String())
	}
}

func TestRun_MetricsServer(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t, "-n", "100", "-trials", "1", "-q", "-metrics-addr", "127.0.0.1:0")
	if code := app.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}

	bad, _ := newTestApp(t, "-n", "100", "-trials", "1", "-q", "-metrics-addr", "256.0.0.1:bad")
	if code := bad.Run(context.Background(), io.Discard); code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d for an unusable address", code, apperrors.ExitErrorGeneric)
	}
}

package calibration

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/agbru/accbench/internal/config"
	"github.com/agbru/accbench/internal/logging"
)

func TestGenerateParallelismDegrees(t *testing.T) {
	t.Parallel()
	tests := []struct {
		available int
		want      []int
	}{
		{available: 0, want: []int{1, 2}},
		{available: 1, want: []int{1, 2}},
		{available: 2, want: []int{1, 2, 4}},
		{available: 6, want: []int{1, 2, 4, 6, 8}},
		{available: 8, want: []int{1, 2, 4, 8, 16}},
		{available: 12, want: []int{1, 2, 4, 8, 12, 16}},
	}
	for _, tt := range tests {
		if got := GenerateParallelismDegrees(tt.available); !slices.Equal(got, tt.want) {
			t.Errorf("GenerateParallelismDegrees(%d) = %v, want %v", tt.available, got, tt.want)
		}
	}
}

func sevens(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = 7
	}
	return data
}

func TestSweep(t *testing.T) {
	t.Parallel()

	logger := logging.NewLogger(io.Discard, "calibration-test")
	degrees := []int{1, 2, 4}
	best, results, err := sweep(context.Background(), sevens(10_000), degrees, 2, logger)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if !slices.Contains(degrees, best) {
		t.Errorf("best degree %d not among %v", best, degrees)
	}
	if len(results) != len(degrees) {
		t.Fatalf("got %d results, want %d", len(results), len(degrees))
	}
	for i, r := range results {
		if r.Parallelism != degrees[i] || r.Err != nil {
			t.Errorf("result %d = %+v", i, r)
		}
	}
}

func TestSweep_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := sweep(ctx, sevens(10), []int{1, 2}, 1, logging.NewLogger(io.Discard, "calibration-test"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSweep_NoDegrees(t *testing.T) {
	t.Parallel()

	_, _, err := sweep(context.Background(), sevens(10), nil, 1, logging.NewLogger(io.Discard, "calibration-test"))
	if !errors.Is(err, ErrNoSuccessfulDegree) {
		t.Errorf("expected ErrNoSuccessfulDegree, got %v", err)
	}
}

func TestRunCalibration_SavesProfile(t *testing.T) {
	t.Parallel()

	cfg := config.AppConfig{CalibrationProfile: filepath.Join(t.TempDir(), "profile.json")}
	var out strings.Builder
	best, err := RunCalibration(context.Background(), cfg, sevens(50_000), logging.NewLogger(io.Discard, "calibration-test"), &out)
	if err != nil {
		t.Fatalf("RunCalibration: %v", err)
	}
	if !strings.Contains(out.String(), "(Optimal)") {
		t.Errorf("table does not mark the optimal degree:\n%s", out.String())
	}

	got, ok := LoadCachedCalibration(cfg)
	if !ok || got != best {
		t.Errorf("LoadCachedCalibration = (%d, %v), want (%d, true)", got, ok, best)
	}
}

func TestLoadCachedCalibration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fresh := filepath.Join(dir, "fresh.json")
	p := NewProfile()
	p.OptimalParallelism = 3
	if err := p.SaveProfile(fresh); err != nil {
		t.Fatal(err)
	}
	foreign := filepath.Join(dir, "foreign.json")
	p = NewProfile()
	p.OptimalParallelism = 3
	p.NumCPU = 999
	if err := p.SaveProfile(foreign); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		cfg    config.AppConfig
		want   int
		wantOK bool
	}{
		{"fresh profile", config.AppConfig{CalibrationProfile: fresh}, 3, true},
		{"forced degree wins", config.AppConfig{CalibrationProfile: fresh, Parallelism: 5}, 0, false},
		{"explicit auto wins", config.AppConfig{CalibrationProfile: fresh, ParallelismForced: true}, 0, false},
		{"other hardware", config.AppConfig{CalibrationProfile: foreign}, 0, false},
		{"missing file", config.AppConfig{CalibrationProfile: filepath.Join(dir, "missing.json")}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := LoadCachedCalibration(tt.cfg)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("got (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

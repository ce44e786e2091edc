package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/agbru/accbench/internal/accumulate"
)

// CurrentProfileVersion is bumped whenever the profile layout changes.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the profile file name in the user's home.
const DefaultProfileFileName = ".accbench_calibration.json"

// CalibrationProfile records the outcome of a calibration run together with
// the hardware it was measured on.
type CalibrationProfile struct {
	ProfileVersion       int       `json:"profile_version"`
	NumCPU               int       `json:"num_cpu"`
	AvailableParallelism int       `json:"available_parallelism"`
	GOARCH               string    `json:"goarch"`
	GOOS                 string    `json:"goos"`
	GoVersion            string    `json:"go_version"`
	WordSize             int       `json:"word_size"`
	CalibratedAt         time.Time `json:"calibrated_at"`
	OptimalParallelism   int       `json:"optimal_parallelism"`
	CalibrationN         int       `json:"calibration_n"`
	CalibrationTime      string    `json:"calibration_time"`
}

// NewProfile returns a profile describing the current machine.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion:       CurrentProfileVersion,
		NumCPU:               runtime.NumCPU(),
		AvailableParallelism: accumulate.AvailableParallelism(),
		GOARCH:               runtime.GOARCH,
		GOOS:                 runtime.GOOS,
		GoVersion:            runtime.Version(),
		WordSize:             32 << (^uint(0) >> 63),
		CalibratedAt:         time.Now(),
	}
}

// SaveProfile writes the profile as indented JSON. The write goes through a
// temporary file and a rename so a crash never leaves a truncated profile.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding calibration profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing calibration profile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing calibration profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding calibration profile %s: %w", path, err)
	}
	return &p, nil
}

// IsValid reports whether the profile was measured on hardware matching
// the current machine, with the same CPUs available to this process. An
// affinity change (taskset, cgroup cpusets) invalidates it.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.AvailableParallelism == accumulate.AvailableParallelism() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("calibration profile v%d: %s/%s, %d CPUs (%d available), optimal parallelism %d, calibrated %s over %d elements in %s",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.AvailableParallelism, p.OptimalParallelism,
		p.CalibratedAt.Format(time.RFC3339), p.CalibrationN, p.CalibrationTime)
}

// LoadOrCreateProfile loads the profile at path. When it cannot be read a
// fresh profile is returned and loaded is false.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile path in the user's home
// directory, falling back to the temporary directory.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, DefaultProfileFileName)
}

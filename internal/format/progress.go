package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates so a stalled start does not print absurd values.
const maxETA = 24 * time.Hour

// ProgressBar renders progress in [0, 1] as a bar of length runes.
func ProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

// StepProgress tracks completion of a fixed number of equally sized steps
// (benchmark runs) and estimates the remaining time from the mean step
// duration so far.
type StepProgress struct {
	total     int
	done      int
	startTime time.Time
	now       func() time.Time
}

// NewStepProgress starts tracking total steps.
func NewStepProgress(total int) *StepProgress {
	return &StepProgress{total: total, startTime: time.Now(), now: time.Now}
}

// Advance records one more completed step and returns the completed
// fraction and the estimated remaining time.
func (p *StepProgress) Advance() (float64, time.Duration) {
	if p.done < p.total {
		p.done++
	}
	return p.Fraction(), p.ETA()
}

// Fraction returns the completed fraction in [0, 1].
func (p *StepProgress) Fraction() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.done) / float64(p.total)
}

// ETA estimates the remaining time, or 0 before the first step completes.
func (p *StepProgress) ETA() time.Duration {
	if p.done == 0 || p.total <= 0 {
		return 0
	}
	perStep := p.now().Sub(p.startTime) / time.Duration(p.done)
	return min(perStep*time.Duration(p.total-p.done), maxETA)
}

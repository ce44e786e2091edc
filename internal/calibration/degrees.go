package calibration

import "slices"

// GenerateParallelismDegrees returns the degrees swept by a calibration run:
// every power of two from 1 up to twice the available parallelism, plus the
// available parallelism itself, in ascending order without duplicates.
//
// Oversubscribed degrees are included because the last block of a
// partition absorbs the remainder, so a few more blocks than CPUs can
// balance better on uneven hardware.
func GenerateParallelismDegrees(available int) []int {
	available = max(available, 1)
	degrees := []int{available}
	for p := 1; p <= 2*available; p *= 2 {
		degrees = append(degrees, p)
	}
	slices.Sort(degrees)
	return slices.Compact(degrees)
}

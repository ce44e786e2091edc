//go:build linux

package accumulate

import "golang.org/x/sys/unix"

// availableCPUs counts the CPUs in the affinity mask of the calling thread.
// It returns 0 when the mask cannot be read.
func availableCPUs() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0
	}
	return set.Count()
}

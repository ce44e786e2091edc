//go:build !linux

package accumulate

import "runtime"

func availableCPUs() int {
	return runtime.NumCPU()
}

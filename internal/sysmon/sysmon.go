// Package sysmon describes the host a benchmark runs on: its processors and
// memory, and how busy it is right before the trials start.
package sysmon

import (
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// NoisyCPUPercent is the host CPU usage above which timings are flagged as
// unreliable.
const NoisyCPUPercent = 50.0

// Host is a snapshot of the machine. Fields gopsutil cannot read stay zero.
type Host struct {
	CPUModel      string
	PhysicalCores int
	LogicalCPUs   int
	TotalMemory   uint64
	CPUPercent    float64 // 0.0 .. 100.0, delta since the previous call
	MemPercent    float64 // 0.0 .. 100.0
}

// Probe reads the host description and current load.
func Probe() Host {
	var h Host
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = strings.TrimSpace(infos[0].ModelName)
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCores = n
	}
	if n, err := cpu.Counts(true); err == nil {
		h.LogicalCPUs = n
	}
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		h.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		h.TotalMemory = vmem.Total
		h.MemPercent = vmem.UsedPercent
	}
	return h
}

// Noisy reports whether other work on the host is likely to skew timings.
func (h Host) Noisy() bool {
	return h.CPUPercent >= NoisyCPUPercent
}

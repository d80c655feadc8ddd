// Package sysmon samples system-wide CPU and memory usage around a benchmark.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds system-wide resource usage over a benchmark.
type Stats struct {
	CPUPercent  float64 `json:"cpu_percent" yaml:"cpu_percent"` // 0.0 .. 100.0
	MemPercent  float64 `json:"mem_percent" yaml:"mem_percent"` // 0.0 .. 100.0
	LogicalCPUs int     `json:"logical_cpus" yaml:"logical_cpus"`
}

// Window measures CPU usage between Start and Stop.
type Window struct {
	before []cpu.TimesStat
}

// Start opens a sampling window. The window is still usable if the CPU
// counters cannot be read; Stop then reports zero CPU usage.
func Start() *Window {
	times, _ := cpu.Times(false)
	return &Window{before: times}
}

// Stop closes the window and returns the CPU usage over it together with
// the current memory usage. Unreadable values are left at zero.
func (w *Window) Stop() Stats {
	var s Stats
	if after, err := cpu.Times(false); err == nil && len(after) > 0 && len(w.before) > 0 {
		s.CPUPercent = busyPercent(w.before[0], after[0])
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCPUs = n
	}
	return s
}

func busyPercent(t1, t2 cpu.TimesStat) float64 {
	idle1, idle2 := t1.Idle+t1.Iowait, t2.Idle+t2.Iowait
	total1, total2 := t1.Total(), t2.Total()
	if total2 <= total1 {
		return 0
	}
	busy := (total2 - idle2) - (total1 - idle1)
	if busy <= 0 {
		return 0
	}
	return min(100, busy/(total2-total1)*100)
}

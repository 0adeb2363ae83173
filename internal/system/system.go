package system

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// MemoryReport summarizes host and process memory at a point in time.
type MemoryReport struct {
	HostUsedMB    float64
	HostTotalMB   float64
	ProcessRSSMB  float64
	HostUsedRatio float64
}

// Memory collects a memory snapshot for the performance report.
func Memory(pid int32) (*MemoryReport, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("reading host memory: %w", err)
	}

	r := &MemoryReport{
		HostUsedMB:    float64(vm.Used) / 1024 / 1024,
		HostTotalMB:   float64(vm.Total) / 1024 / 1024,
		HostUsedRatio: vm.UsedPercent / 100,
	}

	proc, err := process.NewProcess(pid)
	if err != nil {
		return r, nil
	}
	if mi, err := proc.MemoryInfo(); err == nil && mi != nil {
		r.ProcessRSSMB = float64(mi.RSS) / 1024 / 1024
	}

	return r, nil
}

func (r *MemoryReport) String() string {
	return fmt.Sprintf("host %.0f/%.0f MB (%.0f%%) | process %.1f MB",
		r.HostUsedMB, r.HostTotalMB, r.HostUsedRatio*100, r.ProcessRSSMB)
}

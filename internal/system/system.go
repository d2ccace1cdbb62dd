package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Snapshot describes memory use of the current process and the host.
type Snapshot struct {
	RSS         uint64
	HostUsedPct float64
	HostTotal   uint64
	NumCPU      int
}

// TakeSnapshot samples the process and host memory. Fields that cannot be
// read are left zero.
func TakeSnapshot() (Snapshot, error) {
	s := Snapshot{NumCPU: runtime.NumCPU()}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return s, fmt.Errorf("failed to open process: %w", err)
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return s, fmt.Errorf("failed to read process memory: %w", err)
	}
	s.RSS = info.RSS

	vm, err := mem.VirtualMemory()
	if err != nil {
		return s, fmt.Errorf("failed to read host memory: %w", err)
	}
	s.HostUsedPct = vm.UsedPercent
	s.HostTotal = vm.Total
	return s, nil
}

// String formats the snapshot for the performance report.
func (s Snapshot) String() string {
	return fmt.Sprintf("RSS: %.1f MiB | Host memory: %.1f%% of %.1f GiB | CPUs: %d",
		float64(s.RSS)/(1<<20), s.HostUsedPct, float64(s.HostTotal)/(1<<30), s.NumCPU)
}

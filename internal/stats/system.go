package stats

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/go-faster/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sync/errgroup"
)

const cpuSampleInterval = 200 * time.Millisecond

type SystemInfo struct {
	OS           string `json:"os"`
	Hostname     string `json:"hostname"`
	SystemUptime string `json:"system_uptime"`

	CPUCores int     `json:"cpu_cores"`
	CPUUsage float64 `json:"cpu_usage"`

	MemUsed    uint64  `json:"mem_used"`
	MemTotal   uint64  `json:"mem_total"`
	MemPercent float64 `json:"mem_percent"`

	DiskUsed    uint64  `json:"disk_used"`
	DiskTotal   uint64  `json:"disk_total"`
	DiskPercent float64 `json:"disk_percent"`

	ProcessPID int     `json:"process_pid"`
	ProcessCPU float64 `json:"process_cpu"`
	ProcessMem uint64  `json:"process_mem"`

	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	GCRuns     uint32 `json:"gc_runs"`
}

// CollectSystemInfo runs the host, cpu, memory, disk and process probes
// concurrently. The first probe error aborts the snapshot.
func CollectSystemInfo(ctx context.Context) (*SystemInfo, error) {
	info := &SystemInfo{
		CPUCores:   runtime.NumCPU(),
		ProcessPID: os.Getpid(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		h, err := host.InfoWithContext(ctx)
		if err != nil {
			return errors.Wrap(err, "host info")
		}
		info.OS = h.OS
		info.Hostname = h.Hostname
		info.SystemUptime = (time.Duration(h.Uptime) * time.Second).String()
		return nil
	})

	g.Go(func() error {
		pct, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false)
		if err != nil {
			return errors.Wrap(err, "cpu percent")
		}
		if len(pct) > 0 {
			info.CPUUsage = pct[0]
		}
		return nil
	})

	g.Go(func() error {
		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return errors.Wrap(err, "virtual memory")
		}
		info.MemUsed = vm.Used
		info.MemTotal = vm.Total
		info.MemPercent = vm.UsedPercent
		return nil
	})

	g.Go(func() error {
		du, err := disk.UsageWithContext(ctx, "/")
		if err != nil {
			return errors.Wrap(err, "disk usage")
		}
		info.DiskUsed = du.Used
		info.DiskTotal = du.Total
		info.DiskPercent = du.UsedPercent
		return nil
	})

	g.Go(func() error {
		proc, err := process.NewProcessWithContext(ctx, int32(info.ProcessPID))
		if err != nil {
			return errors.Wrap(err, "process")
		}
		if pct, err := proc.CPUPercentWithContext(ctx); err == nil {
			info.ProcessCPU = pct
		}
		if mi, err := proc.MemoryInfoWithContext(ctx); err == nil {
			info.ProcessMem = mi.RSS
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	info.GoVersion = runtime.Version()
	info.Goroutines = runtime.NumGoroutine()
	info.HeapAlloc = m.Alloc
	info.GCRuns = m.NumGC

	return info, nil
}

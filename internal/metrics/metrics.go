// Package metrics captures host utilization snapshots for the status
// panel: CPU, memory, and per-GPU utilization/VRAM. Every probe
// degrades per-field; a missing tool or timed-out read marks that
// field unavailable and never aborts the snapshot.
package metrics

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"
)

// ErrProbeUnavailable marks a metrics source that is missing or timed
// out for this cycle.
var ErrProbeUnavailable = errors.New("metrics probe unavailable")

// probeTimeout bounds each external probe call. A probe slower than
// this yields "unavailable" for the cycle instead of blocking the UI.
const probeTimeout = time.Second

// GPU is one device's reading from the GPU probe.
type GPU struct {
	Index        int
	Name         string
	UtilPercent  float64
	VRAMUsedMiB  float64
	VRAMTotalMiB float64
}

// VRAMPercent is VRAM usage as a percentage of the device total.
func (g GPU) VRAMPercent() float64 {
	if g.VRAMTotalMiB <= 0 {
		return 0
	}
	return g.VRAMUsedMiB / g.VRAMTotalMiB * 100
}

// Snapshot is one polling cycle's readings. Immutable once captured;
// the collector replaces it wholesale each tick.
type Snapshot struct {
	Time         time.Time
	CPUPercent   float64
	CPUAvailable bool
	MemPercent   float64
	MemAvailable bool
	GPUs         []GPU
	GPUSource    string // probe that produced the GPU list, "" if none
}

// runner abstracts external probe execution for tests.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Collector produces snapshots. CPU utilization needs two sequential
// /proc/stat readings, so the first snapshot after construction
// reports CPU as unavailable while the baseline is primed.
//
// Safe for concurrent use: snapshots can overlap when a probe runs
// slower than the polling interval, and each one reads and advances
// the CPU baseline.
type Collector struct {
	mu     sync.Mutex
	prev   *cpuReading
	run    runner
	hasGPU func() bool
	now    func() time.Time
}

// NewCollector creates a collector and primes the CPU baseline.
func NewCollector() *Collector {
	c := &Collector{
		run: execRunner,
		hasGPU: func() bool {
			_, err := exec.LookPath("nvidia-smi")
			return err == nil
		},
		now: time.Now,
	}
	c.prev = readCPUStats()
	return c
}

// Snapshot captures the current readings. Never returns an error:
// each field degrades independently.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{Time: c.now()}

	current := readCPUStats()
	if c.prev != nil && current != nil {
		snap.CPUPercent = cpuPercent(c.prev, current)
		snap.CPUAvailable = true
	}
	if current != nil {
		c.prev = current
	}

	if pct, ok := memoryPercent(); ok {
		snap.MemPercent = pct
		snap.MemAvailable = true
	}

	if gpus, err := c.readGPUs(); err == nil {
		snap.GPUs = gpus
		snap.GPUSource = "nvidia-smi"
	}

	return snap
}

func (c *Collector) readGPUs() ([]GPU, error) {
	if !c.hasGPU() {
		return nil, ErrProbeUnavailable
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := c.run(ctx, "nvidia-smi",
		"--query-gpu=index,name,utilization.gpu,memory.used,memory.total",
		"--format=csv,noheader,nounits")
	if err != nil {
		return nil, ErrProbeUnavailable
	}

	gpus := parseNvidiaCSV(string(out))
	if len(gpus) == 0 {
		return nil, ErrProbeUnavailable
	}
	return gpus, nil
}

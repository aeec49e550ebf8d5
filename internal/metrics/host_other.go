//go:build !linux

package metrics

// Non-Linux hosts have no /proc; CPU and memory report as unavailable
// and the panel shows placeholders. GPU probing still works wherever
// nvidia-smi exists.

type cpuReading struct {
	busy uint64
	idle uint64
}

func readCPUStats() *cpuReading { return nil }

func cpuPercent(previous, current *cpuReading) float64 { return 0 }

func memoryPercent() (float64, bool) { return 0, false }

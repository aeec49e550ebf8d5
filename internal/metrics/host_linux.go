package metrics

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// cpuReading captures cumulative CPU time from /proc/stat for delta
// computation. The first line aggregates all CPUs:
//
//	cpu  user nice system idle iowait irq softirq steal guest guest_nice
//
// busy = user + nice + system + irq + softirq + steal
// idle = idle + iowait
//
// guest and guest_nice are already folded into user/nice by the
// kernel, so they are not added separately.
type cpuReading struct {
	busy uint64
	idle uint64
}

func readCPUStats() *cpuReading {
	return readCPUStatsFrom("/proc/stat")
}

// readCPUStatsFrom parses the first line of a /proc/stat style file.
// Returns nil on any parse failure; callers treat nil as "no reading".
func readCPUStatsFrom(path string) *cpuReading {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return nil
	}

	fields := strings.Fields(scanner.Text())
	if len(fields) < 9 || fields[0] != "cpu" {
		return nil
	}

	values := make([]uint64, len(fields)-1)
	for i := 1; i < len(fields); i++ {
		parsed, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return nil
		}
		values[i-1] = parsed
	}

	busy := values[0] + values[1] + values[2] + values[5] + values[6] + values[7]
	idle := values[3] + values[4]

	return &cpuReading{busy: busy, idle: idle}
}

// cpuPercent computes utilization from two sequential readings.
// Returns 0 when the delta is zero (no time has passed).
func cpuPercent(previous, current *cpuReading) float64 {
	if previous == nil || current == nil {
		return 0
	}
	busyDelta := current.busy - previous.busy
	idleDelta := current.idle - previous.idle
	totalDelta := busyDelta + idleDelta
	if totalDelta == 0 {
		return 0
	}
	return float64(busyDelta) / float64(totalDelta) * 100
}

// memoryPercent reads MemTotal and MemAvailable from /proc/meminfo.
// MemAvailable accounts for reclaimable page cache, matching what
// users expect from a "memory used" figure.
func memoryPercent() (float64, bool) {
	return memoryPercentFrom("/proc/meminfo")
}

func memoryPercentFrom(path string) (float64, bool) {
	file, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer file.Close()

	var total, available uint64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			total, _ = strconv.ParseUint(fields[1], 10, 64)
		case "MemAvailable:":
			available, _ = strconv.ParseUint(fields[1], 10, 64)
		}
		if total > 0 && available > 0 {
			break
		}
	}

	if total == 0 || available > total {
		return 0, false
	}
	return float64(total-available) / float64(total) * 100, true
}

package metrics

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCPUStatsFrom(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "stat",
		"cpu  100 20 30 400 50 6 7 8 0 0\ncpu0 1 2 3 4 5 6 7 8 0 0\n")

	reading := readCPUStatsFrom(path)
	if reading == nil {
		t.Fatal("reading is nil")
	}
	// busy = 100+20+30+6+7+8, idle = 400+50
	if reading.busy != 171 {
		t.Errorf("busy = %d, want 171", reading.busy)
	}
	if reading.idle != 450 {
		t.Errorf("idle = %d, want 450", reading.idle)
	}
}

func TestReadCPUStatsFromMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"wrong label", "cpux 1 2 3 4 5 6 7 8\n"},
		{"too few fields", "cpu 1 2 3\n"},
		{"non-numeric", "cpu 1 2 x 4 5 6 7 8\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeTemp(t, "stat", tt.content)
			if reading := readCPUStatsFrom(path); reading != nil {
				t.Errorf("reading = %+v, want nil", reading)
			}
		})
	}
}

func TestCPUPercent(t *testing.T) {
	t.Parallel()

	previous := &cpuReading{busy: 100, idle: 900}
	current := &cpuReading{busy: 200, idle: 1200}
	// delta busy 100, delta total 400 -> 25%
	if got := cpuPercent(previous, current); math.Abs(got-25) > 0.001 {
		t.Errorf("cpuPercent = %f, want 25", got)
	}
}

func TestCPUPercentNilAndZeroDelta(t *testing.T) {
	t.Parallel()

	if got := cpuPercent(nil, &cpuReading{}); got != 0 {
		t.Errorf("nil previous: %f, want 0", got)
	}
	r := &cpuReading{busy: 5, idle: 5}
	if got := cpuPercent(r, r); got != 0 {
		t.Errorf("zero delta: %f, want 0", got)
	}
}

func TestMemoryPercentFrom(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "meminfo",
		"MemTotal:       16384000 kB\nMemFree:         1024000 kB\nMemAvailable:    4096000 kB\n")

	pct, ok := memoryPercentFrom(path)
	if !ok {
		t.Fatal("memoryPercentFrom failed")
	}
	// used = 16384000-4096000 = 12288000 -> 75%
	if math.Abs(pct-75) > 0.001 {
		t.Errorf("percent = %f, want 75", pct)
	}
}

func TestMemoryPercentFromMissingFields(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "meminfo", "MemFree: 10 kB\n")
	if _, ok := memoryPercentFrom(path); ok {
		t.Error("expected failure without MemTotal/MemAvailable")
	}
}

package metrics

import (
	"strconv"
	"strings"
)

// parseNvidiaCSV parses nvidia-smi --format=csv,noheader,nounits
// output, one device per line:
//
//	index, name, utilization.gpu, memory.used, memory.total
//
// Malformed lines are skipped rather than failing the whole probe; a
// driver mid-reset can emit "[Unknown Error]" for single fields.
func parseNvidiaCSV(out string) []GPU {
	var gpus []GPU
	for _, raw := range strings.Split(strings.TrimSpace(out), "\n") {
		parts := strings.Split(raw, ",")
		if len(parts) < 5 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		index, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		util, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			continue
		}
		used, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			continue
		}
		total, err := strconv.ParseFloat(parts[4], 64)
		if err != nil {
			continue
		}

		gpus = append(gpus, GPU{
			Index:        index,
			Name:         parts[1],
			UtilPercent:  util,
			VRAMUsedMiB:  used,
			VRAMTotalMiB: total,
		})
	}
	return gpus
}

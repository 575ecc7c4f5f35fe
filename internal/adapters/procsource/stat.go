package procsource

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultProcRoot = "/proc"

// statProcessorField is the 1-based index of the "processor" field in
// /proc/<pid>/stat: the CPU the task last ran on.
const statProcessorField = 39

// lastUsedCPU reads the last-used core index for pid from procfs. The comm
// field (2) may contain spaces, so parsing starts after the closing paren.
func lastUsedCPU(procRoot string, pid int32) (int32, error) {
	data, err := os.ReadFile(fmt.Sprintf("%s/%d/stat", procRoot, pid))
	if err != nil {
		return 0, err
	}

	stat := string(data)
	end := strings.LastIndexByte(stat, ')')
	if end < 0 || end+2 > len(stat) {
		return 0, fmt.Errorf("malformed stat for pid %d", pid)
	}

	// Fields after "(comm)" start at field 3.
	fields := strings.Fields(stat[end+2:])
	idx := statProcessorField - 3
	if idx >= len(fields) {
		return 0, fmt.Errorf("stat for pid %d has %d fields, want processor field", pid, len(fields)+2)
	}

	cpu, err := strconv.ParseInt(fields[idx], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse processor field for pid %d: %w", pid, err)
	}
	return int32(cpu), nil
}

package health

import (
	"context"
	"fmt"
	"strconv"
)

// processRow is one matching entry from the OS process table.
type processRow struct {
	PID        int
	WorkingSet int64 // bytes
}

// probeProcess matches pattern case-insensitively against the command lines
// of running processes. Up iff at least one process matches. Memory is
// summed across matches; the pid detail carries a count suffix when more
// than one process matched.
func probeProcess(ctx context.Context, pattern string) (bool, Details, error) {
	if pattern == "" {
		return false, nil, nil
	}
	rows, err := queryProcessTable(ctx, pattern)
	if err != nil {
		// OS query failures and malformed output both read as down.
		return false, Details{}, nil
	}
	return summarizeProcessRows(rows)
}

func summarizeProcessRows(rows []processRow) (bool, Details, error) {
	if len(rows) == 0 {
		return false, Details{}, nil
	}

	var totalMem int64
	pids := make([]int, 0, len(rows))
	for _, r := range rows {
		if r.PID > 0 {
			pids = append(pids, r.PID)
		}
		if r.WorkingSet > 0 {
			totalMem += r.WorkingSet
		}
	}

	details := Details{}
	if len(pids) > 0 {
		pid := strconv.Itoa(pids[0])
		if len(pids) > 1 {
			pid = fmt.Sprintf("%d (+%d)", pids[0], len(pids)-1)
		}
		details = details.add("pid", pid)
	}
	if totalMem > 0 {
		details = details.add("memory", fmt.Sprintf("%.0f MB", float64(totalMem)/(1024*1024)))
	}

	return len(pids) > 0, details, nil
}

//go:build windows

package health

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// queryProcessTable shells out to wmic and filters by command line. WMI's
// LIKE is case-insensitive, so the pattern needs no folding here.
func queryProcessTable(ctx context.Context, pattern string) ([]processRow, error) {
	cmd := exec.CommandContext(ctx, "wmic",
		"process",
		"where", "commandline like '%"+strings.ReplaceAll(pattern, "'", "''")+"%'",
		"get", "processid,workingsetsize",
		"/format:csv",
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	return parseWmicCSV(string(out)), nil
}

// parseWmicCSV reads wmic's CSV output (Node,ProcessId,WorkingSetSize).
// Malformed rows are dropped rather than reported.
func parseWmicCSV(out string) []processRow {
	var rows []processRow
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Node") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			continue
		}
		var row processRow
		if pid, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			row.PID = pid
		}
		if ws, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64); err == nil {
			row.WorkingSet = ws
		}
		if row.PID > 0 || row.WorkingSet > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

//go:build !windows

package health

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// queryProcessTable lists every process via ps and filters by a
// case-insensitive substring of the full command line. rss is reported by
// ps in kilobytes.
func queryProcessTable(ctx context.Context, pattern string) ([]processRow, error) {
	cmd := exec.CommandContext(ctx, "ps", "-axo", "pid=,rss=,args=")
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	return parsePSOutput(string(out), pattern), nil
}

func parsePSOutput(out, pattern string) []processRow {
	needle := strings.ToLower(pattern)
	var rows []processRow
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		args := strings.Join(fields[2:], " ")
		if !strings.Contains(strings.ToLower(args), needle) {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		var ws int64
		if rssKB, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
			ws = rssKB * 1024
		}
		rows = append(rows, processRow{PID: pid, WorkingSet: ws})
	}
	return rows
}

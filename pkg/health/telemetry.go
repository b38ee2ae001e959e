package health

import (
	"fmt"
	"math"
	"strconv"
)

// extractTelemetry pulls memory/version/uptime/record-count fields out of a
// JSON health response. Unrecognized shapes are skipped silently; this never
// affects the up/down verdict.
func extractTelemetry(data map[string]any) Details {
	var info Details

	// Memory: "memoryMB" (already MB) or "memory" (bytes). The first key
	// holding an object wins, even when its rss field is unusable.
	for _, key := range []string{"memoryMB", "memory"} {
		mem, ok := data[key].(map[string]any)
		if !ok {
			continue
		}
		if rss, ok := asNumber(mem["rss"]); ok && rss != 0 {
			if key == "memoryMB" {
				info = info.add("memory", fmt.Sprintf("%d MB", int64(rss)))
			} else {
				info = info.add("memory", fmt.Sprintf("%.0f MB", rss/(1024*1024)))
			}
		}
		break
	}

	for _, key := range []string{"version", "ver"} {
		v, ok := data[key]
		if ok && truthy(v) {
			info = info.add("version", stringify(v))
			break
		}
	}

	for _, key := range []string{"uptimeSeconds", "uptime"} {
		v, ok := asNumber(data[key])
		if !ok {
			continue
		}
		secs := int64(v)
		hours := secs / 3600
		mins := (secs % 3600) / 60
		if hours > 0 {
			info = info.add("uptime", fmt.Sprintf("%dh %dm", hours, mins))
		} else {
			info = info.add("uptime", fmt.Sprintf("%dm", mins))
		}
		break
	}

	countKeys := []string{"types", "files", "members"}

	// Nested index stats (e.g. memoryIndex.types) take precedence.
	if idx, ok := data["memoryIndex"].(map[string]any); ok {
		for _, key := range countKeys {
			if v, ok := asNumber(idx[key]); ok {
				info = info.add(key, comma(int64(v)))
			}
		}
	}

	for _, key := range countKeys {
		if info.has(key) {
			continue
		}
		if v, ok := asNumber(data[key]); ok {
			info = info.add(key, comma(int64(v)))
		}
	}

	return info
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// comma formats n with thousands separators: 1234567 -> "1,234,567".
func comma(n int64) string {
	s := strconv.FormatInt(int64(math.Abs(float64(n))), 10)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if n < 0 {
		return "-" + string(out)
	}
	return string(out)
}

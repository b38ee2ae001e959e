package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime"
	"time"
)

// fake-tool is a stand-in dev tool for exercising devtoolhub locally. It
// serves a /health endpoint with the telemetry fields the dashboard knows
// how to extract.
func main() {
	var port int
	var version string
	flag.IntVar(&port, "port", 0, "Port to listen on (0 for ephemeral)")
	flag.StringVar(&version, "version", "1.2.3", "Version to report in /health")
	flag.Parse()

	if port == 0 {
		if v := os.Getenv("FAKE_TOOL_PORT"); v != "" {
			_, _ = fmt.Sscanf(v, "%d", &port)
		}
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "listen error: %v\n", err)
		os.Exit(2)
	}
	_, _ = fmt.Fprintf(os.Stderr, "listening on %s\n", ln.Addr().String())

	started := time.Now()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		payload := map[string]any{
			"status":  "ok",
			"version": version,
			"memoryMB": map[string]any{
				"rss": float64(mem.Sys) / (1024 * 1024),
			},
			"uptimeSeconds": int(time.Since(started).Seconds()),
			"memoryIndex": map[string]any{
				"types":   1280,
				"files":   342,
				"members": 51234,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("fake-tool"))
	})

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 2 * time.Second,
	}

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		_, _ = fmt.Fprintf(os.Stderr, "serve error: %v\n", err)
		os.Exit(3)
	}
}

package health

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/Joxx0r/devtoolhub/pkg/config"
)

type Strategy string

const (
	StrategyHTTP    Strategy = "http"
	StrategyTCP     Strategy = "tcp"
	StrategyProcess Strategy = "process"
	StrategyNone    Strategy = "none"
)

// maxProbeBody bounds how much of a health response we read for telemetry.
const maxProbeBody = 1 << 20

// ResolveStrategy picks the effective probe strategy for a tool. It runs
// fresh on every check so a stale choice can never be cached.
func ResolveStrategy(t config.Tool) Strategy {
	switch t.HealthCheck {
	case "http":
		return StrategyHTTP
	case "tcp":
		return StrategyTCP
	case "process":
		return StrategyProcess
	}
	if t.HealthURL != "" {
		return StrategyHTTP
	}
	if t.ProcessPattern != "" {
		return StrategyProcess
	}
	if t.URL != "" {
		return StrategyHTTP
	}
	return StrategyNone
}

// probeHTTP issues a single GET over the shared client. Up iff the status
// code is below 400. The resolved port is recorded whenever a response
// arrives; JSON telemetry is attached on success only.
func probeHTTP(ctx context.Context, client *http.Client, t config.Tool) (bool, Details, error) {
	rawURL := t.HealthURL
	if rawURL == "" {
		rawURL = t.URL
	}
	if rawURL == "" {
		return false, nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	up := resp.StatusCode < 400
	details := Details{}.add("port", urlPort(rawURL))

	if up {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBody))
		if err == nil {
			var data map[string]any
			if json.Unmarshal(body, &data) == nil {
				details = append(details, extractTelemetry(data)...)
			}
		}
	}

	return up, details, nil
}

// probeTCP opens and immediately closes a connection to the host/port from
// the tool's url. Up iff the connect succeeds within the probe timeout.
func probeTCP(ctx context.Context, t config.Tool) (bool, Details, error) {
	if t.URL == "" {
		return false, nil, nil
	}
	host, port := urlHostPort(t.URL)
	addr := net.JoinHostPort(host, port)

	d := net.Dialer{Timeout: probeTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false, nil, nil // connection errors mean down, not failure
	}
	_ = conn.Close()
	return true, Details{}.add("endpoint", addr), nil
}

func urlHostPort(rawURL string) (string, string) {
	host := "127.0.0.1"
	port := "80"
	u, err := url.Parse(rawURL)
	if err != nil {
		return host, port
	}
	if h := u.Hostname(); h != "" {
		host = h
	}
	if p := u.Port(); p != "" {
		port = p
	}
	return host, port
}

func urlPort(rawURL string) string {
	_, port := urlHostPort(rawURL)
	return port
}

package tui

import (
	"time"

	"github.com/Joxx0r/devtoolhub/pkg/health"
)

// ToolSummary carries the static config facts the dashboard needs per tool.
// The live probe result travels separately in HealthSnapshot.Statuses.
type ToolSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	HasStart    bool   `json:"has_start"`
	HasWindow   bool   `json:"has_window"`
}

// HealthSnapshot is the full dashboard state at one instant, published on
// TopicHubEvents every watcher tick.
type HealthSnapshot struct {
	At       time.Time                    `json:"at"`
	Tools    []ToolSummary                `json:"tools"`
	Statuses map[string]health.ToolStatus `json:"statuses"`
}

// ToolTransition is emitted when a tool's status changes between rounds.
type ToolTransition struct {
	Name string        `json:"name"`
	From health.Status `json:"from"`
	To   health.Status `json:"to"`
	At   time.Time     `json:"at"`
}

type ActionLog struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

type EventLogEntry struct {
	At     time.Time `json:"at"`
	Source string    `json:"source,omitempty"`
	Level  LogLevel  `json:"level,omitempty"`
	Text   string    `json:"text"`
}

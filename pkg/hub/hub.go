// Package hub wires the configured tool list, the health checker, and the
// platform window/process controller into the actions the front ends call.
package hub

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Joxx0r/devtoolhub/pkg/config"
	"github.com/Joxx0r/devtoolhub/pkg/health"
	"github.com/Joxx0r/devtoolhub/pkg/winctl"
)

type Outcome string

const (
	OutcomeFocused      Outcome = "focused"
	OutcomeLaunched     Outcome = "launched"
	OutcomeLaunchFailed Outcome = "launch_failed"
	OutcomeNotFound     Outcome = "not_found"
)

// ActionResult is the outcome of a focus-or-launch request. PID is set only
// for OutcomeLaunched.
type ActionResult struct {
	Outcome Outcome `json:"outcome"`
	PID     int     `json:"pid,omitempty"`
}

// recheckDelay gives a freshly launched tool a moment to bind its port
// before the out-of-band probe runs.
const recheckDelay = 1 * time.Second

type Hub struct {
	Config  *config.File
	Checker *health.Checker
	Ctl     winctl.Controller
}

func New(cfg *config.File) *Hub {
	return &Hub{
		Config:  cfg,
		Checker: health.NewChecker(cfg.Tools),
		Ctl:     winctl.New(),
	}
}

// Start primes the checker (one synchronous round, so the first render has
// real data) and begins background polling.
func (h *Hub) Start(ctx context.Context) error {
	if err := h.Checker.Prime(ctx); err != nil {
		return err
	}
	h.Checker.StartPolling()
	return nil
}

func (h *Hub) Stop() {
	h.Checker.Stop()
}

// FocusOrLaunch tries to raise the tool's window; when no window turns up
// and a start command is configured, it launches the tool instead. A
// successful launch schedules one out-of-band health check.
func (h *Hub) FocusOrLaunch(name string) ActionResult {
	tool, ok := h.Config.Tool(name)
	if !ok {
		return ActionResult{Outcome: OutcomeNotFound}
	}

	if tool.WindowTitle != "" && h.Ctl.FocusWindow(tool.WindowTitle) {
		log.Debug().Str("tool", name).Msg("window focused")
		return ActionResult{Outcome: OutcomeFocused}
	}

	if tool.StartCommand == "" {
		return ActionResult{Outcome: OutcomeNotFound}
	}

	pid, err := h.StartTool(name)
	if err != nil {
		log.Warn().Str("tool", name).Err(err).Msg("launch failed")
		return ActionResult{Outcome: OutcomeLaunchFailed}
	}
	return ActionResult{Outcome: OutcomeLaunched, PID: pid}
}

// StartTool launches the tool's start command unconditionally and schedules
// an out-of-band health check.
func (h *Hub) StartTool(name string) (int, error) {
	tool, ok := h.Config.Tool(name)
	if !ok {
		return 0, errors.Errorf("unknown tool %q", name)
	}
	if tool.StartCommand == "" {
		return 0, errors.Errorf("tool %q has no start_command", name)
	}

	pid, err := h.Ctl.LaunchProcess(tool.StartCommand, tool.StartCwd, tool.StartWSL)
	if err != nil {
		return 0, err
	}

	go func() {
		time.Sleep(recheckDelay)
		h.Checker.ForceCheck(context.Background())
	}()

	return pid, nil
}

package hub

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Joxx0r/devtoolhub/pkg/config"
	"github.com/Joxx0r/devtoolhub/pkg/health"
	"github.com/Joxx0r/devtoolhub/pkg/winctl"
)

type fakeCtl struct {
	focusResult bool
	launchPID   int
	launchErr   error

	focusedTitle string
	launched     []string
}

var _ winctl.Controller = (*fakeCtl)(nil)

func (f *fakeCtl) FocusWindow(title string) bool {
	f.focusedTitle = title
	return f.focusResult
}

func (f *fakeCtl) LaunchProcess(command, cwd string, useWSL bool) (int, error) {
	f.launched = append(f.launched, command)
	return f.launchPID, f.launchErr
}

func newTestHub(ctl *fakeCtl, tools ...config.Tool) *Hub {
	cfg := &config.File{Tools: tools}
	return &Hub{
		Config:  cfg,
		Checker: health.NewChecker(cfg.Tools),
		Ctl:     ctl,
	}
}

func TestFocusOrLaunchFocuses(t *testing.T) {
	ctl := &fakeCtl{focusResult: true}
	h := newTestHub(ctl, config.Tool{Name: "ide", WindowTitle: "My IDE", StartCommand: "run-ide"})
	defer h.Stop()

	res := h.FocusOrLaunch("ide")
	require.Equal(t, OutcomeFocused, res.Outcome)
	require.Equal(t, "My IDE", ctl.focusedTitle)
	require.Empty(t, ctl.launched)
}

func TestFocusOrLaunchFallsBackToLaunch(t *testing.T) {
	ctl := &fakeCtl{focusResult: false, launchPID: 4242}
	h := newTestHub(ctl, config.Tool{Name: "ide", WindowTitle: "My IDE", StartCommand: "run-ide"})
	defer h.Stop()

	res := h.FocusOrLaunch("ide")
	require.Equal(t, OutcomeLaunched, res.Outcome)
	require.Equal(t, 4242, res.PID)
	require.Equal(t, []string{"run-ide"}, ctl.launched)
}

func TestFocusOrLaunchNoWindowNoCommand(t *testing.T) {
	ctl := &fakeCtl{focusResult: false}
	h := newTestHub(ctl, config.Tool{Name: "ide", WindowTitle: "My IDE"})
	defer h.Stop()

	res := h.FocusOrLaunch("ide")
	require.Equal(t, OutcomeNotFound, res.Outcome)
	require.Zero(t, res.PID)
}

func TestFocusOrLaunchLaunchFailure(t *testing.T) {
	ctl := &fakeCtl{focusResult: false, launchErr: errors.New("spawn rejected")}
	h := newTestHub(ctl, config.Tool{Name: "ide", WindowTitle: "My IDE", StartCommand: "run-ide"})
	defer h.Stop()

	res := h.FocusOrLaunch("ide")
	require.Equal(t, OutcomeLaunchFailed, res.Outcome)
	require.Zero(t, res.PID)
}

func TestFocusOrLaunchUnknownTool(t *testing.T) {
	h := newTestHub(&fakeCtl{})
	defer h.Stop()
	require.Equal(t, OutcomeNotFound, h.FocusOrLaunch("nope").Outcome)
}

func TestStartToolRequiresCommand(t *testing.T) {
	h := newTestHub(&fakeCtl{}, config.Tool{Name: "ide"})
	defer h.Stop()

	_, err := h.StartTool("ide")
	require.Error(t, err)
	_, err = h.StartTool("ghost")
	require.Error(t, err)
}

func TestStartToolLaunchesAndReturnsPID(t *testing.T) {
	ctl := &fakeCtl{launchPID: 77}
	h := newTestHub(ctl, config.Tool{Name: "svc", StartCommand: "run-svc"})
	defer h.Stop()

	pid, err := h.StartTool("svc")
	require.NoError(t, err)
	require.Equal(t, 77, pid)
}

func TestHubStartPrimesChecker(t *testing.T) {
	h := newTestHub(&fakeCtl{}, config.Tool{Name: "bare"})
	require.NoError(t, h.Start(context.Background()))
	defer h.Stop()

	require.Eventually(t, func() bool {
		snap := h.Checker.Snapshot()
		_, ok := snap["bare"]
		return ok
	}, time.Second, 10*time.Millisecond)
}

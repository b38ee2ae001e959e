package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Joxx0r/devtoolhub/pkg/config"
	"github.com/Joxx0r/devtoolhub/pkg/health"
	"github.com/Joxx0r/devtoolhub/pkg/hub"
	"github.com/Joxx0r/devtoolhub/pkg/winctl"
)

type fakeCtl struct {
	focusResult bool
	launchPID   int
	launchErr   error
}

var _ winctl.Controller = (*fakeCtl)(nil)

func (f *fakeCtl) FocusWindow(title string) bool { return f.focusResult }

func (f *fakeCtl) LaunchProcess(command, cwd string, useWSL bool) (int, error) {
	return f.launchPID, f.launchErr
}

func newRunnerHub(ctl *fakeCtl, tools ...config.Tool) *hub.Hub {
	cfg := &config.File{Tools: tools}
	return &hub.Hub{Config: cfg, Checker: health.NewChecker(cfg.Tools), Ctl: ctl}
}

func TestRunActionFocus(t *testing.T) {
	h := newRunnerHub(&fakeCtl{focusResult: true}, config.Tool{Name: "ide", WindowTitle: "IDE"})
	defer h.Stop()

	text := runAction(h, ActionRequest{Kind: ActionFocus, Tool: "ide"})
	require.Equal(t, "ide: focused", text)
}

func TestRunActionFocusFallsBackToLaunch(t *testing.T) {
	h := newRunnerHub(&fakeCtl{launchPID: 99}, config.Tool{Name: "ide", WindowTitle: "IDE", StartCommand: "run"})
	defer h.Stop()

	text := runAction(h, ActionRequest{Kind: ActionFocus, Tool: "ide"})
	require.Equal(t, "ide: launched (pid 99)", text)
}

func TestRunActionStartWithoutCommand(t *testing.T) {
	h := newRunnerHub(&fakeCtl{}, config.Tool{Name: "ide"})
	defer h.Stop()

	text := runAction(h, ActionRequest{Kind: ActionStart, Tool: "ide"})
	require.Contains(t, text, "start failed")
}

func TestRunActionOpenWithoutURL(t *testing.T) {
	h := newRunnerHub(&fakeCtl{}, config.Tool{Name: "ide"})
	defer h.Stop()

	text := runAction(h, ActionRequest{Kind: ActionOpen, Tool: "ide"})
	require.Equal(t, "ide: no url configured", text)
}

func TestRunActionUnknownKind(t *testing.T) {
	h := newRunnerHub(&fakeCtl{})
	defer h.Stop()

	text := runAction(h, ActionRequest{Kind: "dance"})
	require.Equal(t, "unknown action: dance", text)
}

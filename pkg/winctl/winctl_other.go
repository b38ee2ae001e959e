//go:build !windows

package winctl

import (
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type stubController struct{}

func newPlatformController() Controller {
	return &stubController{}
}

// FocusWindow always reports not-found: there is no window control off
// Windows, and callers fall back to launching.
func (c *stubController) FocusWindow(string) bool {
	return false
}

// LaunchProcess spawns the command as a detached session leader. The WSL
// flag is meaningless here; the command runs through the local shell.
func (c *stubController) LaunchProcess(command, cwd string, _ bool) (int, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = cwd
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, errors.Wrap(err, "launch process")
	}
	pid := cmd.Process.Pid
	log.Info().Str("command", command).Int("pid", pid).Msg("process launched")
	go func() { _ = cmd.Wait() }()
	return pid, nil
}

// Package winctl brings tool windows to the foreground and launches
// detached background processes. The full implementation exists on Windows
// only; every other platform gets a stub whose focus calls report not-found
// while launching still works through a plain process spawn.
package winctl

// Controller is the platform capability set for window and process control.
type Controller interface {
	// FocusWindow finds a window by exact title, falling back to a
	// case-insensitive substring match over visible top-level windows, and
	// raises it. It reports whether a window was found; the OS may still
	// silently refuse the foreground switch.
	FocusWindow(title string) bool

	// LaunchProcess spawns command as a detached, windowless background
	// process in cwd. With useWSL set the command is routed through the WSL
	// bridge instead of the native shell. Returns the new pid.
	LaunchProcess(command, cwd string, useWSL bool) (int, error)
}

// New returns the controller for the current platform.
func New() Controller {
	return newPlatformController()
}

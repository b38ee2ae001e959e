//go:build windows

package winctl

import (
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procEnumWindows         = user32.NewProc("EnumWindows")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procIsWindowVisible     = user32.NewProc("IsWindowVisible")
	procIsIconic            = user32.NewProc("IsIconic")
	procShowWindow          = user32.NewProc("ShowWindow")
	procKeybdEvent          = user32.NewProc("keybd_event")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
)

const (
	swRestore       = 9
	vkMenu          = 0x12 // Alt
	keyeventfKeyup  = 0x0002
	swpNoSize       = 0x0001
	swpNoMove       = 0x0002
	createNewGroup  = 0x00000200 // CREATE_NEW_PROCESS_GROUP
	detachedProcess = 0x00000008 // DETACHED_PROCESS
)

var (
	hwndTopmost   = ^uintptr(0)     // HWND_TOPMOST (-1)
	hwndNoTopmost = ^uintptr(0) - 1 // HWND_NOTOPMOST (-2)
)

type windowsController struct{}

func newPlatformController() Controller {
	return &windowsController{}
}

// The runtime never releases syscall callbacks, so the EnumWindows
// callback is created exactly once. enumMu serializes searches through
// the shared needle/result pair.
var (
	enumMu     sync.Mutex
	enumNeedle string
	enumFound  uintptr
	enumProc   = windows.NewCallback(func(h uintptr, _ uintptr) uintptr {
		visible, _, _ := procIsWindowVisible.Call(h)
		if visible == 0 {
			return 1 // continue enumeration
		}
		if strings.Contains(strings.ToLower(windowText(h)), enumNeedle) {
			enumFound = h
			return 0
		}
		return 1
	})
)

// findWindow resolves a title to a window handle: exact match first, then
// the first visible top-level window containing title case-insensitively.
func findWindow(title string) uintptr {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	if hwnd != 0 {
		return hwnd
	}

	enumMu.Lock()
	defer enumMu.Unlock()
	enumNeedle = strings.ToLower(title)
	enumFound = 0
	_, _, _ = procEnumWindows.Call(enumProc, 0)
	return enumFound
}

func windowText(hwnd uintptr) string {
	buf := make([]uint16, 512)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func (c *windowsController) FocusWindow(title string) bool {
	hwnd := findWindow(title)
	if hwnd == 0 {
		return false
	}

	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		_, _, _ = procShowWindow.Call(hwnd, swRestore)
	}

	// A synthetic Alt press lets SetForegroundWindow succeed from a
	// background process despite the focus-stealing lock.
	_, _, _ = procKeybdEvent.Call(vkMenu, 0, 0, 0)
	_, _, _ = procKeybdEvent.Call(vkMenu, 0, keyeventfKeyup, 0)

	_, _, _ = procSetForegroundWindow.Call(hwnd)

	// Bounce through topmost to force a visual raise without pinning.
	_, _, _ = procSetWindowPos.Call(hwnd, hwndTopmost, 0, 0, 0, 0, swpNoSize|swpNoMove)
	_, _, _ = procSetWindowPos.Call(hwnd, hwndNoTopmost, 0, 0, 0, 0, swpNoSize|swpNoMove)

	return true
}

func (c *windowsController) LaunchProcess(command, cwd string, useWSL bool) (int, error) {
	argv := launchArgv(command, useWSL)

	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec
	cmd.Dir = cwd
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: createNewGroup | detachedProcess,
		HideWindow:    true,
	}

	if err := cmd.Start(); err != nil {
		return 0, errors.Wrap(err, "launch process")
	}
	pid := cmd.Process.Pid
	log.Info().Str("command", command).Int("pid", pid).Bool("wsl", useWSL).Msg("process launched")
	go func() { _ = cmd.Wait() }()
	return pid, nil
}

// launchArgv wraps command for cmd.exe, or for bash inside WSL when
// requested.
func launchArgv(command string, useWSL bool) []string {
	if useWSL {
		return []string{"wsl.exe", "bash", "-lc", command}
	}
	return []string{"cmd", "/C", command}
}

package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

func testRouter(t *testing.T, ctl *fakeCtl, tools ...config.Tool) (http.Handler, *hub.Hub) {
	t.Helper()
	cfg := &config.File{Tools: tools}
	h := &hub.Hub{
		Config:  cfg,
		Checker: health.NewChecker(cfg.Tools),
		Ctl:     ctl,
	}
	require.NoError(t, h.Checker.Prime(context.Background()))
	t.Cleanup(h.Stop)
	return NewRouter(h), h
}

func do(t *testing.T, handler http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAPIStatus(t *testing.T) {
	router, _ := testRouter(t, &fakeCtl{}, config.Tool{Name: "ide"}, config.Tool{Name: "db"})

	rec := do(t, router, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap map[string]health.ToolStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap, 2)
	require.Equal(t, health.StatusUnknown, snap["ide"].Status)
}

func TestDashboardRendersRows(t *testing.T) {
	router, _ := testRouter(t, &fakeCtl{},
		config.Tool{Name: "ide", Description: "editor", StartCommand: "run-ide"},
		config.Tool{Name: "db"},
	)

	rec := do(t, router, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "ide")
	require.Contains(t, body, "editor")
	require.Contains(t, body, "/api/start/ide")
	require.NotContains(t, body, "/api/start/db")
}

func TestStatusPartialIsFragment(t *testing.T) {
	router, _ := testRouter(t, &fakeCtl{}, config.Tool{Name: "ide"})

	rec := do(t, router, http.MethodGet, "/partials/status")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "<table>")
	require.False(t, strings.Contains(body, "<html"))
}

func TestFocusUnknownTool(t *testing.T) {
	router, _ := testRouter(t, &fakeCtl{}, config.Tool{Name: "ide"})

	rec := do(t, router, http.MethodPost, "/api/focus/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.OK)
}

func TestFocusRaisesWindow(t *testing.T) {
	ctl := &fakeCtl{focusResult: true}
	router, _ := testRouter(t, ctl, config.Tool{Name: "ide", WindowTitle: "IDE"})

	rec := do(t, router, http.MethodPost, "/api/focus/ide")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Focused")
}

func TestFocusLaunchesWhenWindowGone(t *testing.T) {
	ctl := &fakeCtl{focusResult: false, launchPID: 777}
	router, _ := testRouter(t, ctl, config.Tool{Name: "ide", WindowTitle: "IDE", StartCommand: "run-ide"})

	rec := do(t, router, http.MethodPost, "/api/focus/ide")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Opening (PID 777)")
}

func TestFocusWithoutWindowOrCommand(t *testing.T) {
	router, _ := testRouter(t, &fakeCtl{}, config.Tool{Name: "ide"})

	rec := do(t, router, http.MethodPost, "/api/focus/ide")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Window not found")
}

func TestStartWithoutCommand(t *testing.T) {
	router, _ := testRouter(t, &fakeCtl{}, config.Tool{Name: "ide"})

	rec := do(t, router, http.MethodPost, "/api/start/ide")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartReportsPID(t *testing.T) {
	ctl := &fakeCtl{launchPID: 1234}
	router, _ := testRouter(t, ctl, config.Tool{Name: "ide", StartCommand: "run-ide"})

	rec := do(t, router, http.MethodPost, "/api/start/ide")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Started (PID 1234)")
}

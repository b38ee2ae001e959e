package health

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Joxx0r/devtoolhub/pkg/config"
)

func TestPrimePopulatesEveryTool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewChecker([]config.Tool{
		{Name: "web", URL: srv.URL},
		{Name: "bare"},
	})
	defer c.Stop()

	require.NoError(t, c.Prime(context.Background()))

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	require.Equal(t, StatusUp, snap["web"].Status)
	require.False(t, snap["web"].LastChecked.IsZero())
	// no resolvable strategy: frozen at unknown, no telemetry ever
	require.Equal(t, StatusUnknown, snap["bare"].Status)
	require.Empty(t, snap["bare"].Details)
	require.True(t, snap["bare"].LastChecked.IsZero())
}

func TestCheckerDownOnRefusedConnection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := NewChecker([]config.Tool{{Name: "gone", URL: "http://" + addr}})
	defer c.Stop()
	require.NoError(t, c.Prime(context.Background()))

	st := c.Snapshot()["gone"]
	require.Equal(t, StatusDown, st.Status)
	require.Empty(t, st.Details)
}

func TestOneFailingToolDoesNotAffectSiblings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewChecker([]config.Tool{
		{Name: "ok", URL: srv.URL},
		{Name: "broken", URL: "http://127.0.0.1:1"},
	})
	defer c.Stop()
	require.NoError(t, c.Prime(context.Background()))

	snap := c.Snapshot()
	require.Equal(t, StatusUp, snap["ok"].Status)
	require.Equal(t, StatusDown, snap["broken"].Status)
}

func TestForceCheckRefreshesStatus(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	c := NewChecker([]config.Tool{{Name: "flappy", URL: srv.URL}})
	defer c.Stop()
	require.NoError(t, c.Prime(context.Background()))
	require.Equal(t, StatusDown, c.Snapshot()["flappy"].Status)

	healthy.Store(true)
	c.ForceCheck(context.Background())
	require.Equal(t, StatusUp, c.Snapshot()["flappy"].Status)
}

func TestForceCheckBeforePrimeIsNoop(t *testing.T) {
	c := NewChecker([]config.Tool{{Name: "t", URL: "http://127.0.0.1:1"}})
	defer c.Stop()

	c.ForceCheck(context.Background())
	require.Empty(t, c.Snapshot())
}

func TestPollingUpdatesStatuses(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewChecker([]config.Tool{{Name: "web", URL: srv.URL}}, WithInterval(20*time.Millisecond))
	defer c.Stop()
	require.NoError(t, c.Prime(context.Background()))
	c.StartPolling()

	require.Eventually(t, func() bool { return hits.Load() >= 3 }, 2*time.Second, 10*time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	c := NewChecker(nil)
	c.Stop()
	c.Stop()

	// started variant
	c2 := NewChecker(nil, WithInterval(10*time.Millisecond))
	require.NoError(t, c2.Prime(context.Background()))
	c2.StartPolling()
	c2.Stop()
	c2.Stop()
}

func TestNoWritesAfterStop(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// First hit (the priming round) answers immediately; later hits
		// stall so a round is still in flight when Stop is issued.
		if hits.Add(1) > 1 {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	defer close(release)

	c := NewChecker([]config.Tool{{Name: "slow", URL: srv.URL}})
	require.NoError(t, c.Prime(context.Background()))

	// Kick off a round that will still be in flight when Stop is issued.
	roundDone := make(chan struct{})
	go func() {
		c.ForceCheck(context.Background())
		close(roundDone)
	}()
	time.Sleep(50 * time.Millisecond)

	before := c.Snapshot()["slow"]
	c.Stop()

	select {
	case <-roundDone:
	case <-time.After(5 * time.Second):
		t.Fatal("probe round did not finish")
	}

	after := c.Snapshot()["slow"]
	require.Equal(t, before.Status, after.Status)
	require.Equal(t, before.LastChecked, after.LastChecked)
}

func TestStatusReplacedWholesale(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if healthy.Load() {
			_, _ = w.Write([]byte(`{"version": "9"}`))
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewChecker([]config.Tool{{Name: "t", URL: srv.URL}})
	defer c.Stop()
	require.NoError(t, c.Prime(context.Background()))

	st := c.Snapshot()["t"]
	require.Equal(t, StatusUp, st.Status)
	require.True(t, st.Details.has("version"))

	// Telemetry from the healthy round must not leak into the failed one.
	healthy.Store(false)
	c.ForceCheck(context.Background())
	st = c.Snapshot()["t"]
	require.Equal(t, StatusDown, st.Status)
	require.False(t, st.Details.has("version"))
}

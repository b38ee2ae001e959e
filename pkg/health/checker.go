package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Joxx0r/devtoolhub/pkg/config"
)

const (
	pollInterval = 10 * time.Second
	probeTimeout = 3 * time.Second
	// Process probes shell out and get extra headroom over network probes.
	processProbeTimeout = probeTimeout + 2*time.Second
)

// Checker owns the status map for a fixed list of tools and the background
// polling loop that refreshes it. Lifecycle: New -> Prime -> StartPolling ->
// Stop. Snapshot is safe at any time after Prime and never blocks on I/O.
type Checker struct {
	tools    []config.Tool
	interval time.Duration
	client   *http.Client

	mu       sync.RWMutex
	statuses map[string]ToolStatus
	primed   bool
	stopped  bool

	cancel   context.CancelFunc
	baseCtx  context.Context
	pollOnce sync.Once
	stopOnce sync.Once
	pollDone chan struct{}
	polling  bool
}

type CheckerOption func(*Checker)

// WithInterval overrides the polling interval. Used by tests.
func WithInterval(d time.Duration) CheckerOption {
	return func(c *Checker) { c.interval = d }
}

func NewChecker(tools []config.Tool, opts ...CheckerOption) *Checker {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Checker{
		tools:    tools,
		interval: pollInterval,
		client:   &http.Client{Timeout: probeTimeout},
		statuses: make(map[string]ToolStatus, len(tools)),
		baseCtx:  ctx,
		cancel:   cancel,
		pollDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prime populates the status map (so readers never observe a missing key)
// and runs one full check round synchronously before returning.
func (c *Checker) Prime(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return errors.New("checker stopped")
	}
	for _, t := range c.tools {
		c.statuses[t.Name] = newToolStatus()
	}
	c.primed = true
	c.mu.Unlock()

	c.checkAll(ctx)
	return nil
}

// StartPolling launches the background loop. Call after Prime. The loop
// sleeps one interval, probes every tool concurrently, waits for the round
// to finish, and repeats until Stop.
func (c *Checker) StartPolling() {
	c.pollOnce.Do(func() {
		c.mu.Lock()
		if c.stopped {
			c.mu.Unlock()
			close(c.pollDone)
			return
		}
		c.polling = true
		c.mu.Unlock()
		go c.pollLoop()
	})
}

func (c *Checker) pollLoop() {
	defer close(c.pollDone)

	t := time.NewTicker(c.interval)
	defer t.Stop()

	for {
		select {
		case <-c.baseCtx.Done():
			return
		case <-t.C:
			c.checkAll(c.baseCtx)
		}
	}
}

// Stop cancels the polling loop and any in-flight probes, waits for the
// loop to exit, and releases the shared HTTP client. Idempotent; safe to
// call without ever having started. After Stop returns, nothing writes to
// the status map again.
func (c *Checker) Stop() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.stopped = true
		polling := c.polling
		c.mu.Unlock()

		c.cancel()
		if polling {
			<-c.pollDone
		}
		c.client.CloseIdleConnections()
	})
}

// ForceCheck runs one ad-hoc round outside the periodic schedule, typically
// right after a tool was launched. No-op before Prime or after Stop.
func (c *Checker) ForceCheck(ctx context.Context) {
	c.mu.RLock()
	ready := c.primed && !c.stopped
	c.mu.RUnlock()
	if !ready {
		return
	}

	// Tie the ad-hoc round to the checker lifetime so Stop abandons it.
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()
	release := context.AfterFunc(c.baseCtx, cancel)
	defer release()

	c.checkAll(rctx)
}

// Snapshot returns a full copy of the status map.
func (c *Checker) Snapshot() map[string]ToolStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]ToolStatus, len(c.statuses))
	for name, st := range c.statuses {
		cp := st
		cp.Details = append(Details{}, st.Details...)
		out[name] = cp
	}
	return out
}

// checkAll fans out one probe per tool and waits for the whole round.
func (c *Checker) checkAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, tool := range c.tools {
		wg.Add(1)
		go func(t config.Tool) {
			defer wg.Done()
			c.checkTool(ctx, t)
		}(tool)
	}
	wg.Wait()
}

// checkTool probes one tool and replaces its ToolStatus wholesale. Any
// probe failure, including a panic, reads as down with empty details; one
// tool's failure never touches its siblings.
func (c *Checker) checkTool(ctx context.Context, t config.Tool) {
	strategy := ResolveStrategy(t)
	if strategy == StrategyNone {
		return // nothing to probe; status stays frozen
	}

	t0 := time.Now()
	up, details := c.runProbe(ctx, strategy, t)

	c.store(t.Name, ToolStatus{
		Status:      verdict(up),
		LatencyMS:   time.Since(t0).Milliseconds(),
		LastChecked: time.Now(),
		Details:     details,
	})
}

func (c *Checker) runProbe(ctx context.Context, strategy Strategy, t config.Tool) (up bool, details Details) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("tool", t.Name).Interface("panic", r).Msg("probe panicked")
			up = false
			details = Details{}
		}
	}()

	var err error
	switch strategy {
	case StrategyHTTP:
		up, details, err = probeHTTP(ctx, c.client, t)
	case StrategyTCP:
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		up, details, err = probeTCP(probeCtx, t)
	case StrategyProcess:
		probeCtx, cancel := context.WithTimeout(ctx, processProbeTimeout)
		defer cancel()
		up, details, err = probeProcess(probeCtx, t.ProcessPattern)
	}
	if err != nil {
		log.Debug().Str("tool", t.Name).Err(err).Msg("probe failed")
		return false, Details{}
	}
	if details == nil {
		details = Details{}
	}
	return up, details
}

// store replaces one tool's record. Writes are dropped once a stop has been
// issued so an abandoned probe cannot resurrect stale state.
func (c *Checker) store(name string, st ToolStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.statuses[name] = st
}

func verdict(up bool) Status {
	if up {
		return StatusUp
	}
	return StatusDown
}

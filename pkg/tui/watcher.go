package tui

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"

	"github.com/Joxx0r/devtoolhub/pkg/health"
	"github.com/Joxx0r/devtoolhub/pkg/hub"
)

// HealthWatcher republishes the checker's snapshot on the bus at a fixed
// interval and emits a ToolTransition whenever a tool's status changed
// since the previous tick.
type HealthWatcher struct {
	Hub      *hub.Hub
	Interval time.Duration
	Pub      message.Publisher

	lastStatuses map[string]health.Status
}

func (w *HealthWatcher) Run(ctx context.Context) error {
	if w.Hub == nil {
		return errors.New("missing Hub")
	}
	if w.Pub == nil {
		return errors.New("missing Publisher")
	}
	if w.Interval <= 0 {
		w.Interval = 1 * time.Second
	}

	t := time.NewTicker(w.Interval)
	defer t.Stop()

	for {
		if err := w.emitSnapshot(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func (w *HealthWatcher) emitSnapshot() error {
	statuses := w.Hub.Checker.Snapshot()
	now := time.Now()

	if w.lastStatuses != nil {
		for name, st := range statuses {
			prev, seen := w.lastStatuses[name]
			if !seen || prev == st.Status {
				continue
			}
			ev := ToolTransition{Name: name, From: prev, To: st.Status, At: now}
			if err := w.publish(DomainTypeToolTransition, ev); err != nil {
				return err
			}
		}
	}

	last := make(map[string]health.Status, len(statuses))
	for name, st := range statuses {
		last[name] = st.Status
	}
	w.lastStatuses = last

	tools := make([]ToolSummary, 0, len(w.Hub.Config.Tools))
	for _, t := range w.Hub.Config.Tools {
		tools = append(tools, ToolSummary{
			Name:        t.Name,
			Description: t.Description,
			URL:         t.URL,
			HasStart:    t.StartCommand != "",
			HasWindow:   t.WindowTitle != "",
		})
	}

	return w.publish(DomainTypeHealthSnapshot, HealthSnapshot{
		At:       now,
		Tools:    tools,
		Statuses: statuses,
	})
}

func (w *HealthWatcher) publish(typ string, payload any) error {
	env, err := NewEnvelope(typ, payload)
	if err != nil {
		return err
	}
	b, err := env.MarshalJSONBytes()
	if err != nil {
		return err
	}
	return w.Pub.Publish(TopicHubEvents, message.NewMessage(watermill.NewUUID(), b))
}

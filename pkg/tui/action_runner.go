package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Joxx0r/devtoolhub/pkg/hub"
)

// RegisterUIActionRunner consumes action requests from the UI and runs them
// against the hub. Outcomes and failures come back as action log events so
// the TUI event log shows what happened.
func RegisterUIActionRunner(bus *Bus, h *hub.Hub) {
	bus.AddHandler("hub-ui-actions", TopicUIActions, func(msg *message.Message) error {
		defer msg.Ack()

		var env Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			_ = publishActionLog(bus.Publisher, "action: bad envelope (unmarshal failed)")
			return nil
		}
		if env.Type != UITypeActionRequest {
			return nil
		}

		var req ActionRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			_ = publishActionLog(bus.Publisher, "action: bad request (unmarshal failed)")
			return nil
		}
		if req.Kind == "" {
			return nil
		}

		text := runAction(h, req)
		_ = publishActionLog(bus.Publisher, text)
		return nil
	})
}

func runAction(h *hub.Hub, req ActionRequest) string {
	switch req.Kind {
	case ActionFocus:
		res := h.FocusOrLaunch(req.Tool)
		switch res.Outcome {
		case hub.OutcomeFocused:
			return fmt.Sprintf("%s: focused", req.Tool)
		case hub.OutcomeLaunched:
			return fmt.Sprintf("%s: launched (pid %d)", req.Tool, res.PID)
		case hub.OutcomeLaunchFailed:
			return fmt.Sprintf("%s: launch failed", req.Tool)
		default:
			return fmt.Sprintf("%s: no window and no start command", req.Tool)
		}
	case ActionStart:
		pid, err := h.StartTool(req.Tool)
		if err != nil {
			return fmt.Sprintf("%s: start failed: %v", req.Tool, err)
		}
		return fmt.Sprintf("%s: started (pid %d)", req.Tool, pid)
	case ActionOpen:
		tool, ok := h.Config.Tool(req.Tool)
		if !ok || tool.URL == "" {
			return fmt.Sprintf("%s: no url configured", req.Tool)
		}
		if err := openURL(tool.URL); err != nil {
			return fmt.Sprintf("%s: open failed: %v", req.Tool, err)
		}
		return fmt.Sprintf("%s: opened %s", req.Tool, tool.URL)
	case ActionRefresh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		h.Checker.ForceCheck(ctx)
		return "refreshed all tools"
	default:
		return fmt.Sprintf("unknown action: %s", req.Kind)
	}
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

func publishActionLog(pub message.Publisher, text string) error {
	ev := ActionLog{At: time.Now(), Text: text}
	env, err := NewEnvelope(DomainTypeActionLog, ev)
	if err != nil {
		return err
	}
	b, err := env.MarshalJSONBytes()
	if err != nil {
		return err
	}
	return pub.Publish(TopicHubEvents, message.NewMessage(watermill.NewUUID(), b))
}

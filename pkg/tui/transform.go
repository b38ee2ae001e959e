package tui

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"

	"github.com/Joxx0r/devtoolhub/pkg/health"
)

// RegisterDomainToUITransformer turns domain events into UI messages.
// Snapshots pass through without an event log echo, they arrive every
// watcher tick and would drown the log. Transitions and action logs each
// become one log line.
func RegisterDomainToUITransformer(bus *Bus) {
	bus.AddHandler("hub-domain-to-ui", TopicHubEvents, func(msg *message.Message) error {
		defer msg.Ack()

		var env Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			return errors.Wrap(err, "unmarshal domain envelope")
		}

		publishUI := func(uiType string, payload any) error {
			uiEnv, err := NewEnvelope(uiType, payload)
			if err != nil {
				return err
			}
			uiBytes, err := uiEnv.MarshalJSONBytes()
			if err != nil {
				return err
			}
			if err := bus.Publisher.Publish(TopicUIMessages, message.NewMessage(watermill.NewUUID(), uiBytes)); err != nil {
				return errors.Wrap(err, "publish ui message")
			}
			return nil
		}

		publishEventText := func(at time.Time, source string, level LogLevel, text string) error {
			entry := EventLogEntry{At: at, Source: source, Level: level, Text: text}
			return publishUI(UITypeEventAppend, entry)
		}

		switch env.Type {
		case DomainTypeHealthSnapshot:
			var snap HealthSnapshot
			if err := json.Unmarshal(env.Payload, &snap); err != nil {
				return errors.Wrap(err, "unmarshal health snapshot")
			}
			return publishUI(UITypeHealthSnapshot, snap)
		case DomainTypeToolTransition:
			var ev ToolTransition
			if err := json.Unmarshal(env.Payload, &ev); err != nil {
				return errors.Wrap(err, "unmarshal tool transition")
			}

			level := LogLevelInfo
			if ev.To == health.StatusDown {
				level = LogLevelWarn
			}
			text := fmt.Sprintf("%s: %s -> %s", ev.Name, ev.From, ev.To)
			return publishEventText(ev.At, ev.Name, level, text)
		case DomainTypeActionLog:
			var logEv ActionLog
			if err := json.Unmarshal(env.Payload, &logEv); err != nil {
				return errors.Wrap(err, "unmarshal action log")
			}
			return publishEventText(logEv.At, "action", LogLevelInfo, logEv.Text)
		default:
			return nil
		}
	})
}

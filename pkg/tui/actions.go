package tui

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"
)

type ActionKind string

const (
	ActionFocus   ActionKind = "focus"
	ActionStart   ActionKind = "start"
	ActionOpen    ActionKind = "open" // open the tool's URL in a browser
	ActionRefresh ActionKind = "refresh"
)

type ActionRequest struct {
	Kind ActionKind `json:"kind"`
	At   time.Time  `json:"at"`
	Tool string     `json:"tool,omitempty"`
}

func PublishAction(pub message.Publisher, req ActionRequest) error {
	if pub == nil {
		return errors.New("missing publisher")
	}
	if req.Kind == "" {
		return errors.New("missing action kind")
	}
	if req.At.IsZero() {
		req.At = time.Now()
	}

	env, err := NewEnvelope(UITypeActionRequest, req)
	if err != nil {
		return err
	}
	b, err := env.MarshalJSONBytes()
	if err != nil {
		return err
	}
	return pub.Publish(TopicUIActions, message.NewMessage(watermill.NewUUID(), b))
}

// Package health implements the concurrent multi-strategy probing engine
// behind the devtoolhub dashboards.
package health

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

type Status string

const (
	StatusUnknown Status = "unknown"
	StatusUp      Status = "up"
	StatusDown    Status = "down"
)

// Detail is one free-form telemetry key/value attached to a status.
type Detail struct {
	Key   string
	Value string
}

// Details is an ordered set of telemetry key/values. It marshals as a JSON
// object whose keys appear in insertion order.
type Details []Detail

func (d Details) Get(key string) (string, bool) {
	for _, kv := range d {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

func (d Details) add(key, value string) Details {
	return append(d, Detail{Key: key, Value: value})
}

func (d Details) has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON walks the object token by token so key order survives a
// round trip through the message bus.
func (d *Details) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("details: expected JSON object")
	}
	var out Details
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("details: non-string key")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		out = append(out, Detail{Key: key, Value: value})
	}
	*d = out
	return nil
}

// ToolStatus is the latest probe outcome for one tool. It is replaced as a
// whole record on every probe completion, never merged.
type ToolStatus struct {
	Status      Status    `json:"status"`
	LatencyMS   int64     `json:"latency_ms"`
	LastChecked time.Time `json:"-"`
	Details     Details   `json:"details"`
}

func newToolStatus() ToolStatus {
	return ToolStatus{Status: StatusUnknown, Details: Details{}}
}

// MarshalJSON emits last_checked as ISO-8601 or null, matching the shape the
// web API exposes.
func (s ToolStatus) MarshalJSON() ([]byte, error) {
	var lastChecked *string
	if !s.LastChecked.IsZero() {
		v := s.LastChecked.UTC().Format(time.RFC3339)
		lastChecked = &v
	}
	type alias ToolStatus
	return json.Marshal(struct {
		alias
		LastChecked *string `json:"last_checked"`
	}{alias(s), lastChecked})
}

func (s *ToolStatus) UnmarshalJSON(b []byte) error {
	type alias ToolStatus
	var aux struct {
		alias
		LastChecked *string `json:"last_checked"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*s = ToolStatus(aux.alias)
	if aux.LastChecked != nil {
		ts, err := time.Parse(time.RFC3339, *aux.LastChecked)
		if err != nil {
			return err
		}
		s.LastChecked = ts
	}
	return nil
}

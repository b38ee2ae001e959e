package health

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDetailsMarshalPreservesOrder(t *testing.T) {
	d := Details{}.add("port", "8080").add("memory", "64 MB").add("version", "1.0")

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `{"port":"8080","memory":"64 MB","version":"1.0"}`, string(b))

	var back Details
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, d, back)
}

func TestToolStatusJSONRoundTrip(t *testing.T) {
	st := ToolStatus{
		Status:      StatusUp,
		LatencyMS:   12,
		LastChecked: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Details:     Details{}.add("port", "80"),
	}

	b, err := json.Marshal(st)
	require.NoError(t, err)
	require.Contains(t, string(b), `"last_checked":"2026-03-01T10:30:00Z"`)

	var back ToolStatus
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, st.Status, back.Status)
	require.Equal(t, st.LatencyMS, back.LatencyMS)
	require.True(t, st.LastChecked.Equal(back.LastChecked))
	require.Equal(t, st.Details, back.Details)
}

func TestToolStatusNeverCheckedMarshalsNull(t *testing.T) {
	b, err := json.Marshal(newToolStatus())
	require.NoError(t, err)
	require.Contains(t, string(b), `"last_checked":null`)
	require.Contains(t, string(b), `"status":"unknown"`)
	require.Contains(t, string(b), `"details":{}`)
}

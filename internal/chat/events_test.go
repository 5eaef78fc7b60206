package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventJSONAlwaysCarriesContent(t *testing.T) {
	// an empty citation block still serializes with the content key
	payload, err := json.Marshal(Event{Type: EventTypeMessage, Content: ""})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"message","content":""}`, string(payload))
}

func TestEventJSONDelta(t *testing.T) {
	payload, err := json.Marshal(Event{Type: EventTypeMessage, Content: "partial text"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"message","content":"partial text"}`, string(payload))
}

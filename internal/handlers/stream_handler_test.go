package handlers

import (
	"bufio"
	"bytes"
	"testing"

	"docuchat-backend/internal/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSESinkFrameShape(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSSESink(bufio.NewWriter(&buf))

	require.NoError(t, sink.Send(chat.Event{Type: chat.EventTypeMessage, Content: "delta"}))
	require.NoError(t, sink.Send(chat.Event{Type: chat.EventTypeMessage, Content: ""}))
	require.NoError(t, sink.Send(chat.Event{Type: chat.EventTypeDone}))

	assert.Equal(t,
		"data: {\"type\":\"message\",\"content\":\"delta\"}\n\n"+
			"data: {\"type\":\"message\",\"content\":\"\"}\n\n"+
			"data: {\"type\":\"done\",\"content\":\"\"}\n\n",
		buf.String())
}

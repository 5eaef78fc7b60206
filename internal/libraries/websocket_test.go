package libraries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendAfterCloseReturnsError(t *testing.T) {
	client := &Client{ID: "c1", Send: make(chan []byte, 4)}

	require.NoError(t, client.trySend([]byte("delta")))
	client.close()

	// a turn goroutine still streaming must get an error, not a panic
	assert.ErrorIs(t, client.trySend([]byte("late delta")), ErrClientGone)
}

func TestClientCloseIsIdempotent(t *testing.T) {
	client := &Client{ID: "c1", Send: make(chan []byte, 1)}

	client.close()
	client.close()

	assert.ErrorIs(t, client.trySend([]byte("x")), ErrClientGone)
}

func TestClientDropsWhenBufferFull(t *testing.T) {
	client := &Client{ID: "c1", Send: make(chan []byte, 1)}

	require.NoError(t, client.trySend([]byte("a")))
	assert.ErrorIs(t, client.trySend([]byte("b")), ErrClientGone)
}

func TestHubUnregisterStopsDeliveryWithoutPanic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{ID: "c1", Send: make(chan []byte, 4)}
	hub.Register <- client
	hub.Unregister <- client
	// the channels are unbuffered, so once this register is accepted the
	// unregister above has fully run and the client is closed
	hub.Register <- &Client{ID: "c2", Send: make(chan []byte, 1)}

	assert.ErrorIs(t, SendErrorMessage(hub, client, "turn still streaming"), ErrClientGone)
}

func TestHubUnregisterUnknownClientIsNoop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{ID: "c1", Send: make(chan []byte, 1)}
	hub.Unregister <- client
	hub.Register <- client

	// never registered before, so the unregister must not have closed it
	assert.NoError(t, client.trySend([]byte("still open")))
}

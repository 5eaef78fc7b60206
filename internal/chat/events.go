package chat

type EventType string

const (
	EventTypeMessage EventType = "message"
	EventTypeDone    EventType = "done"
	EventTypeError   EventType = "error"
)

// Event is one server-push frame of a chat turn. Per turn the transport sees
// zero or more message events (text deltas), exactly one message event
// carrying the citation block, then done — or a terminal error instead.
// Content is always serialized; the citation event for an empty retrieval
// must still carry the key.
type Event struct {
	Type    EventType `json:"type"`
	Content string    `json:"content"`
}

// Sink receives turn events in emission order. A Send error means the client
// is gone; the turn aborts without persisting.
type Sink interface {
	Send(event Event) error
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(event Event) error

func (f SinkFunc) Send(event Event) error {
	return f(event)
}

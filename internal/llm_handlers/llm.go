package llmHandlers

import (
	"context"
)

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	Role    MessageRole
	Content string
}

// StreamFunc receives one raw text delta from the model, in generation order.
// Returning an error aborts the stream.
type StreamFunc func(ctx context.Context, chunk []byte) error

type Client interface {
	Chat(ctx context.Context, systemMessage string, messages []Message) (string, error)
	// ChatStream invokes fn for every delta as it arrives and returns the
	// full accumulated response once the stream completes.
	ChatStream(ctx context.Context, systemMessage string, messages []Message, fn StreamFunc) (string, error)
}

package chat

import (
	"context"

	llmHandlers "docuchat-backend/internal/llm_handlers"
	"docuchat-backend/internal/retrieval"
)

// LLMGenerator adapts an LLM client into the Generator contract. The client
// only yields text deltas, so the retrieved passages are attached in a final
// empty-delta chunk once the stream completes (the end-of-stream source-list
// shape).
type LLMGenerator struct {
	client llmHandlers.Client
}

func NewLLMGenerator(client llmHandlers.Client) *LLMGenerator {
	return &LLMGenerator{client: client}
}

func (g *LLMGenerator) GenerateStream(ctx context.Context, prompt string, passages []retrieval.Passage, fn func(Chunk) error) error {
	messages := []llmHandlers.Message{
		{Role: llmHandlers.RoleUser, Content: prompt},
	}

	_, err := g.client.ChatStream(ctx, "", messages, func(ctx context.Context, chunk []byte) error {
		return fn(Chunk{Delta: string(chunk)})
	})
	if err != nil {
		return err
	}

	if len(passages) > 0 {
		return fn(Chunk{Sources: passages})
	}
	return nil
}

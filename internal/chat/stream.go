package chat

import (
	"context"
	"errors"
	"strings"

	"docuchat-backend/internal/retrieval"
)

// Chunk is one increment from a generator: a text delta plus any source
// passages the generator attached to it. Generators that only know their
// sources at the end of the stream deliver them in a final empty-delta chunk.
type Chunk struct {
	Delta   string
	Sources []retrieval.Passage
}

// Generator produces a finite, non-restartable stream of chunks for one
// prompt. The retrieved passages are handed in so the generator can attach
// them for source attribution, per chunk or at stream end.
type Generator interface {
	GenerateStream(ctx context.Context, prompt string, passages []retrieval.Passage, fn func(Chunk) error) error
}

// StreamResult is what a completed generation stream hands back for
// finalizing: the raw accumulated response and the rendered citations.
type StreamResult struct {
	FullResponse  string
	CitationBlock string
	Citations     []CitationEntry
}

var errControllerReused = errors.New("stream controller is single-use")

const streamErrorMessage = "An unexpected error occurred. Please try again later."

// StreamController drives one generation stream: it relays every non-empty
// delta to the sink before accumulating it, preserving arrival order, and
// feeds attached sources to the deduplicator. A failed stream emits one
// terminal error event and must never reach persistence.
type StreamController struct {
	generator Generator
	sink      Sink
	dedup     *SourceDeduplicator
	started   bool
}

func NewStreamController(generator Generator, sink Sink) *StreamController {
	return &StreamController{
		generator: generator,
		sink:      sink,
		dedup:     NewSourceDeduplicator(),
	}
}

func (c *StreamController) Run(ctx context.Context, prompt string, passages []retrieval.Passage) (*StreamResult, error) {
	if c.started {
		return nil, errControllerReused
	}
	c.started = true

	var full strings.Builder

	err := c.generator.GenerateStream(ctx, prompt, passages, func(chunk Chunk) error {
		if chunk.Delta != "" {
			// relay before accumulating so the client sees deltas in
			// generation order
			if err := c.sink.Send(Event{Type: EventTypeMessage, Content: chunk.Delta}); err != nil {
				return err
			}
			full.WriteString(chunk.Delta)
		}
		for _, p := range chunk.Sources {
			c.dedup.ObservePassage(p)
		}
		return nil
	})
	if err != nil {
		// partial response is dropped, nothing is persisted
		_ = c.sink.Send(Event{Type: EventTypeError, Content: streamErrorMessage})
		return nil, err
	}

	return &StreamResult{
		FullResponse:  full.String(),
		CitationBlock: c.dedup.Render(),
		Citations:     c.dedup.Entries(),
	}, nil
}

package chat

import (
	"context"
	"errors"
	"testing"

	"docuchat-backend/internal/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator replays scripted chunks and optionally fails mid-stream.
type fakeGenerator struct {
	chunks       []Chunk
	failAfter    int // fail after emitting this many chunks, -1 for never
	attachAtEnd  bool
	seenPassages []retrieval.Passage
}

func (g *fakeGenerator) GenerateStream(ctx context.Context, prompt string, passages []retrieval.Passage, fn func(Chunk) error) error {
	g.seenPassages = passages
	for i, chunk := range g.chunks {
		if g.failAfter >= 0 && i == g.failAfter {
			return errors.New("generator blew up")
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	if g.failAfter >= 0 && g.failAfter >= len(g.chunks) {
		return errors.New("generator blew up")
	}
	if g.attachAtEnd && len(passages) > 0 {
		return fn(Chunk{Sources: passages})
	}
	return nil
}

type recordingSink struct {
	events  []Event
	sendErr error
}

func (s *recordingSink) Send(event Event) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.events = append(s.events, event)
	return nil
}

func TestStreamControllerRelaysDeltasInOrder(t *testing.T) {
	gen := &fakeGenerator{
		chunks:    []Chunk{{Delta: "Hello"}, {Delta: " "}, {Delta: "world"}},
		failAfter: -1,
	}
	sink := &recordingSink{}

	controller := NewStreamController(gen, sink)
	result, err := controller.Run(context.Background(), "prompt", nil)

	require.NoError(t, err)
	assert.Equal(t, "Hello world", result.FullResponse)
	require.Len(t, sink.events, 3)
	assert.Equal(t, []Event{
		{Type: EventTypeMessage, Content: "Hello"},
		{Type: EventTypeMessage, Content: " "},
		{Type: EventTypeMessage, Content: "world"},
	}, sink.events)
}

func TestStreamControllerDeduplicatesPerChunkSources(t *testing.T) {
	passageA := retrieval.Passage{ID: "a", Text: "passage a"}
	passageB := retrieval.Passage{ID: "b", Text: "passage b"}
	gen := &fakeGenerator{
		chunks: []Chunk{
			{Delta: "one", Sources: []retrieval.Passage{passageA}},
			{Delta: "two", Sources: []retrieval.Passage{passageA, passageB}},
			{Delta: "three", Sources: []retrieval.Passage{passageB}},
		},
		failAfter: -1,
	}
	sink := &recordingSink{}

	controller := NewStreamController(gen, sink)
	result, err := controller.Run(context.Background(), "prompt", nil)

	require.NoError(t, err)
	assert.Equal(t, "1: passage a\n2: passage b", result.CitationBlock)
	assert.Len(t, result.Citations, 2)
}

func TestStreamControllerHandlesEndOfStreamSources(t *testing.T) {
	passages := []retrieval.Passage{
		{ID: "a", Text: "passage a"},
		{ID: "b", Text: "passage b"},
	}
	gen := &fakeGenerator{
		chunks:      []Chunk{{Delta: "answer"}},
		failAfter:   -1,
		attachAtEnd: true,
	}
	sink := &recordingSink{}

	controller := NewStreamController(gen, sink)
	result, err := controller.Run(context.Background(), "prompt", passages)

	require.NoError(t, err)
	assert.Equal(t, "answer", result.FullResponse)
	assert.Equal(t, "1: passage a\n2: passage b", result.CitationBlock)
	// the source-list chunk carries no delta, so the transport saw one event
	assert.Len(t, sink.events, 1)
}

func TestStreamControllerMidStreamFailure(t *testing.T) {
	gen := &fakeGenerator{
		chunks:    []Chunk{{Delta: "partial"}, {Delta: " answer"}},
		failAfter: 1,
	}
	sink := &recordingSink{}

	controller := NewStreamController(gen, sink)
	result, err := controller.Run(context.Background(), "prompt", nil)

	require.Error(t, err)
	assert.Nil(t, result)
	// one relayed delta, then the terminal error event
	require.Len(t, sink.events, 2)
	assert.Equal(t, EventTypeMessage, sink.events[0].Type)
	assert.Equal(t, EventTypeError, sink.events[1].Type)
}

func TestStreamControllerIsSingleUse(t *testing.T) {
	gen := &fakeGenerator{chunks: []Chunk{{Delta: "once"}}, failAfter: -1}
	sink := &recordingSink{}

	controller := NewStreamController(gen, sink)
	_, err := controller.Run(context.Background(), "prompt", nil)
	require.NoError(t, err)

	_, err = controller.Run(context.Background(), "prompt", nil)
	assert.Error(t, err)
}

func TestStreamControllerAbortsWhenSinkFails(t *testing.T) {
	gen := &fakeGenerator{
		chunks:    []Chunk{{Delta: "one"}, {Delta: "two"}},
		failAfter: -1,
	}
	sink := &recordingSink{sendErr: errors.New("client gone")}

	controller := NewStreamController(gen, sink)
	_, err := controller.Run(context.Background(), "prompt", nil)

	assert.Error(t, err)
}

package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"docuchat-backend/internal/models"
	"docuchat-backend/internal/repo"
	"docuchat-backend/internal/retrieval"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var ErrChatroomNotFound = errors.New("chatroom not found")

const (
	// summaryMaxLen caps the lazily-filled chatroom title and description.
	summaryMaxLen = 100

	// DefaultTurnTimeout bounds one whole turn; on expiry the turn behaves
	// like a mid-stream failure (error event, nothing persisted).
	DefaultTurnTimeout = 2 * time.Minute
)

// Orchestrator composes one chat turn: retrieve context, stream generation,
// deduplicate citations, persist both messages atomically, lazily fill the
// chatroom summary on the first turn. Collaborators are constructed once at
// startup and shared read-only across turns; each turn is independent.
type Orchestrator struct {
	retriever    retrieval.Retriever
	generator    Generator
	chatroomRepo repo.ChatroomRepoInterface
	messageRepo  repo.MessageRepoInterface
	topK         int
	turnTimeout  time.Duration
}

func NewOrchestrator(
	retriever retrieval.Retriever,
	generator Generator,
	chatroomRepo repo.ChatroomRepoInterface,
	messageRepo repo.MessageRepoInterface,
) *Orchestrator {
	return &Orchestrator{
		retriever:    retriever,
		generator:    generator,
		chatroomRepo: chatroomRepo,
		messageRepo:  messageRepo,
		topK:         retrieval.DefaultTopK,
		turnTimeout:  DefaultTurnTimeout,
	}
}

// RunTurn executes one chat turn and pushes its events to the sink.
//
// A missing chatroom returns ErrChatroomNotFound with zero side effects and
// zero events. Retrieval or generation failures emit one terminal error
// event and persist nothing. Retried requests create a fresh turn each time;
// there is no idempotency key, duplicate turns on client retry are accepted
// behavior.
func (o *Orchestrator) RunTurn(ctx context.Context, chatroomId uuid.UUID, userMessage string, sink Sink) error {
	start := time.Now()

	chatroom, err := o.chatroomRepo.GetChatroom(chatroomId)
	if err != nil {
		_ = sink.Send(Event{Type: EventTypeError, Content: streamErrorMessage})
		return fmt.Errorf("get chatroom: %w", err)
	}
	if chatroom == nil {
		return ErrChatroomNotFound
	}

	if o.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.turnTimeout)
		defer cancel()
	}

	// Retrieving
	passages, err := o.retriever.Retrieve(ctx, userMessage, o.topK)
	if err != nil {
		_ = sink.Send(Event{Type: EventTypeError, Content: streamErrorMessage})
		return fmt.Errorf("retrieve context: %w", err)
	}

	contextParts := make([]string, 0, len(passages))
	for _, p := range passages {
		contextParts = append(contextParts, p.Text)
	}
	contextStr := strings.Join(contextParts, " ")

	// Generating
	prompt := BuildPrompt(contextStr, userMessage)
	controller := NewStreamController(o.generator, sink)
	result, err := controller.Run(ctx, prompt, passages)
	if err != nil {
		// controller already emitted the terminal error event
		return fmt.Errorf("generation stream: %w", err)
	}

	// the citation block is pushed once generation completes, even when empty
	if err := sink.Send(Event{Type: EventTypeMessage, Content: result.CitationBlock}); err != nil {
		return fmt.Errorf("send citations: %w", err)
	}

	// Finalizing
	assistantContent := result.FullResponse
	if result.CitationBlock != "" {
		assistantContent += "\n\n" + result.CitationBlock
	}

	userMsg := &models.Message{
		ChatroomUUID: chatroomId,
		Sender:       models.SenderUser,
		Content:      userMessage,
	}
	elapsed := time.Since(start).Milliseconds()
	assistantMsg := &models.Message{
		ChatroomUUID:  chatroomId,
		Sender:        models.SenderAssistant,
		Content:       assistantContent,
		ExecutionTime: &elapsed,
	}

	citations := make([]models.Citation, 0, len(result.Citations))
	for _, entry := range result.Citations {
		meta, _ := json.Marshal(map[string]interface{}{"score": entry.Score})
		citations = append(citations, models.Citation{
			Position:  entry.Position,
			PassageID: entry.PassageID,
			Content:   entry.Content,
			Metadata:  datatypes.JSON(meta),
		})
	}

	if err := o.messageRepo.CreateTurn(userMsg, assistantMsg, citations); err != nil {
		// the deltas the client already received are not retracted
		_ = sink.Send(Event{Type: EventTypeError, Content: streamErrorMessage})
		return fmt.Errorf("persist turn: %w", err)
	}

	if chatroom.Title == nil {
		title := truncateRunes(userMessage, summaryMaxLen)
		description := truncateRunes(newlineReplacer.Replace(assistantContent), summaryMaxLen)
		if err := o.chatroomRepo.SetChatroomSummaryIfUnset(chatroomId, title, description); err != nil {
			// summary is best-effort; the turn itself already committed
			log.Println(err, "Error updating chatroom summary")
		}
	}

	return sink.Send(Event{Type: EventTypeDone})
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

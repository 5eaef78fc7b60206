package handlers

import (
	"context"
	"errors"
	"log"

	"docuchat-backend/internal/chat"
	"docuchat-backend/internal/libraries"
	"docuchat-backend/internal/repo"

	"github.com/google/uuid"
)

// ChatTurnProcessor runs chat turns for websocket clients, relaying the same
// turn events the SSE endpoint emits.
type ChatTurnProcessor struct {
	orchestrator *chat.Orchestrator
	chatroomRepo repo.ChatroomRepoInterface
}

func NewChatTurnProcessor(orchestrator *chat.Orchestrator, chatroomRepo repo.ChatroomRepoInterface) *ChatTurnProcessor {
	return &ChatTurnProcessor{
		orchestrator: orchestrator,
		chatroomRepo: chatroomRepo,
	}
}

func (p *ChatTurnProcessor) ProcessChatMessage(hub *libraries.Hub, client *libraries.Client, chatroomId string, message *libraries.ChatMessagePayload) {
	id, err := uuid.Parse(chatroomId)
	if err != nil {
		libraries.SendErrorMessage(hub, client, "Invalid chatroom ID")
		return
	}
	if message.Message == "" {
		libraries.SendErrorMessage(hub, client, "Message cannot be empty")
		return
	}

	// the turn is only announced for a chatroom that exists
	chatroom, err := p.chatroomRepo.GetChatroom(id)
	if err != nil {
		log.Println(err, "Error getting chatroom")
		libraries.SendErrorMessage(hub, client, "Failed to get chatroom")
		return
	}
	if chatroom == nil {
		libraries.SendErrorMessage(hub, client, "Chatroom not found")
		return
	}

	if err := libraries.SendEventType(hub, client, libraries.WebSocketMessageTypeChatStarting); err != nil {
		return
	}

	// send failures propagate so a disconnected client aborts the turn
	sink := chat.SinkFunc(func(event chat.Event) error {
		switch event.Type {
		case chat.EventTypeMessage:
			return libraries.SendChatMessageResponse(hub, client, libraries.WebSocketMessageTypeChatResponse, &libraries.ChatMessagePayload{
				ChatroomId: chatroomId,
				Message:    event.Content,
			})
		case chat.EventTypeDone:
			return libraries.SendEventType(hub, client, libraries.WebSocketMessageTypeChatCompleted)
		case chat.EventTypeError:
			return libraries.SendErrorMessage(hub, client, event.Content)
		}
		return nil
	})

	if err := p.orchestrator.RunTurn(context.Background(), id, message.Message, sink); err != nil {
		if errors.Is(err, chat.ErrChatroomNotFound) {
			libraries.SendErrorMessage(hub, client, "Chatroom not found")
			return
		}
		if errors.Is(err, libraries.ErrClientGone) {
			// disconnect mid-turn ends the stream; nothing was persisted
			return
		}
		log.Println(err, "Error running chat turn")
	}
}

package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"docuchat-backend/internal/chat"
	"docuchat-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// StreamHandler serves the streaming chat turn endpoint. Events are pushed
// as server-sent events, one JSON object per frame.
type StreamHandler struct {
	orchestrator *chat.Orchestrator
	chatroomRepo repo.ChatroomRepoInterface
}

func NewStreamHandler(orchestrator *chat.Orchestrator, chatroomRepo repo.ChatroomRepoInterface) *StreamHandler {
	return &StreamHandler{
		orchestrator: orchestrator,
		chatroomRepo: chatroomRepo,
	}
}

// SSESink writes chat events in SSE framing and flushes after every event so
// deltas reach the client as they arrive. A failed flush means the client
// disconnected, which aborts the turn upstream.
type SSESink struct {
	w *bufio.Writer
}

func NewSSESink(w *bufio.Writer) *SSESink {
	return &SSESink{w: w}
}

func (s *SSESink) Send(event chat.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return s.w.Flush()
}

// function to run one streaming chat turn against a chatroom
func (h *StreamHandler) StreamChat(c *fiber.Ctx) error {
	chatroomId, err := uuid.Parse(c.Params("chatroomId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid chatroom ID",
		})
	}

	var dto struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if dto.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message cannot be empty",
		})
	}

	// the not-found case must be a plain 404, before any stream is opened
	chatroom, err := h.chatroomRepo.GetChatroom(chatroomId)
	if err != nil {
		log.Println(err, "Error getting chatroom")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get chatroom",
		})
	}
	if chatroom == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Chatroom not found",
		})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	message := dto.Message
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		// detached from the request context: the turn owns its own lifetime
		// and the orchestrator's timeout bounds it
		sink := NewSSESink(w)
		if err := h.orchestrator.RunTurn(context.Background(), chatroomId, message, sink); err != nil {
			if !errors.Is(err, chat.ErrChatroomNotFound) {
				log.Println(err, "Error running chat turn")
			}
		}
	})

	return nil
}

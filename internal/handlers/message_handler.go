package handlers

import (
	"errors"
	"log"

	"docuchat-backend/internal/models"
	"docuchat-backend/internal/repo"
	"docuchat-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messageRepo  repo.MessageRepoInterface
	citationRepo repo.CitationRepoInterface
}

func NewMessageHandler(messageRepo repo.MessageRepoInterface, citationRepo repo.CitationRepoInterface) *MessageHandler {
	return &MessageHandler{
		messageRepo:  messageRepo,
		citationRepo: citationRepo,
	}
}

// function to get messages of a chatroom with pagination
func (h *MessageHandler) GetMessagesByChatroomId(c *fiber.Ctx) error {
	chatroomId, err := uuid.Parse(c.Params("chatroomId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid chatroom ID",
		})
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	messages, total, err := h.messageRepo.GetMessagesByChatroomId(chatroomId, limit, offset)
	if err != nil {
		log.Println(err, "Error getting messages")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get messages",
		})
	}

	pagination := utils.GetPaginationInfo(total, limit, offset)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"messages":  messages,
		"total":     total,
		"page":      pagination.Page,
		"pageCount": pagination.PageCount,
	})
}

// function to get a single message by id
func (h *MessageHandler) GetMessage(c *fiber.Ctx) error {
	messageId, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message ID",
		})
	}

	message, err := h.messageRepo.GetMessage(messageId)
	if err != nil {
		log.Println(err, "Error getting message")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get message",
		})
	}
	if message == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Message not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
	})
}

// function to get messages carrying a comment
func (h *MessageHandler) GetMessagesWithComment(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	messages, total, err := h.messageRepo.GetMessagesWithComment(limit, offset)
	if err != nil {
		log.Println(err, "Error getting messages with comment")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get messages",
		})
	}

	pagination := utils.GetPaginationInfo(total, limit, offset)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"messages":  messages,
		"total":     total,
		"page":      pagination.Page,
		"pageCount": pagination.PageCount,
	})
}

// function to attach or replace a comment on an assistant message
func (h *MessageHandler) UpsertMessageComment(c *fiber.Ctx) error {
	messageId, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message ID",
		})
	}

	var dto struct {
		Reaction models.Reaction `json:"reaction"`
		Content  string          `json:"content"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if dto.Reaction != models.ReactionLike && dto.Reaction != models.ReactionDislike {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Reaction must be LIKE or DISLIKE",
		})
	}

	err = h.messageRepo.UpsertMessageComment(messageId, dto.Reaction, dto.Content)
	if errors.Is(err, repo.ErrMessageNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Message not found",
		})
	}
	if errors.Is(err, repo.ErrCommentNotAllowed) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comments can only be attached to assistant messages",
		})
	}
	if err != nil {
		log.Println(err, "Error upserting message comment")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update message comment",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment saved successfully",
	})
}

// function to get the citations of an assistant message
func (h *MessageHandler) GetMessageCitations(c *fiber.Ctx) error {
	messageId, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message ID",
		})
	}

	citations, err := h.citationRepo.GetCitationsByMessageId(messageId)
	if err != nil {
		log.Println(err, "Error getting citations")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get citations",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"citations": citations,
	})
}

package handlers

import (
	"log"

	"docuchat-backend/internal/repo"
	"docuchat-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// for simple crud operations service layer is not required
type ChatroomHandler struct {
	chatroomRepo repo.ChatroomRepoInterface
}

func NewChatroomHandler(chatroomRepo repo.ChatroomRepoInterface) *ChatroomHandler {
	return &ChatroomHandler{chatroomRepo: chatroomRepo}
}

// function to create an empty chatroom
func (h *ChatroomHandler) CreateChatroom(c *fiber.Ctx) error {
	chatroom, err := h.chatroomRepo.CreateChatroom()
	if err != nil {
		log.Println(err, "Error creating chatroom")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create chatroom",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"chatroom": chatroom,
	})
}

// function to get chatrooms with pagination
func (h *ChatroomHandler) GetChatrooms(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	chatrooms, total, err := h.chatroomRepo.GetChatrooms(limit, offset)
	if err != nil {
		log.Println(err, "Error getting chatrooms")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get chatrooms",
		})
	}

	pagination := utils.GetPaginationInfo(total, limit, offset)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"chatrooms": chatrooms,
		"total":     total,
		"page":      pagination.Page,
		"pageCount": pagination.PageCount,
	})
}

// function to get a chatroom by id
func (h *ChatroomHandler) GetChatroom(c *fiber.Ctx) error {
	chatroomId, err := uuid.Parse(c.Params("chatroomId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid chatroom ID",
		})
	}

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

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"chatroom": chatroom,
	})
}

// function to delete a chatroom with its messages and citations
func (h *ChatroomHandler) DeleteChatroom(c *fiber.Ctx) error {
	chatroomId, err := uuid.Parse(c.Params("chatroomId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid chatroom ID",
		})
	}

	chatroom, err := h.chatroomRepo.GetChatroom(chatroomId)
	if err != nil {
		log.Println(err, "Error getting chatroom")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete chatroom",
		})
	}
	if chatroom == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Chatroom not found",
		})
	}

	if err := h.chatroomRepo.DeleteChatroom(chatroomId); err != nil {
		log.Println(err, "Error deleting chatroom")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete chatroom",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Chatroom deleted successfully",
	})
}

package handlers

import (
	"net/http/httptest"
	"testing"

	"docuchat-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatroomRepo struct {
	chatroom *models.Chatroom
	deleted  []uuid.UUID
}

func (r *stubChatroomRepo) CreateChatroom() (*models.Chatroom, error) {
	return &models.Chatroom{UUID: uuid.New()}, nil
}

func (r *stubChatroomRepo) GetChatrooms(limit int, offset int) ([]models.Chatroom, int64, error) {
	if r.chatroom == nil {
		return nil, 0, nil
	}
	return []models.Chatroom{*r.chatroom}, 1, nil
}

func (r *stubChatroomRepo) GetChatroom(chatroomId uuid.UUID) (*models.Chatroom, error) {
	if r.chatroom != nil && r.chatroom.UUID == chatroomId {
		return r.chatroom, nil
	}
	return nil, nil
}

func (r *stubChatroomRepo) DeleteChatroom(chatroomId uuid.UUID) error {
	r.deleted = append(r.deleted, chatroomId)
	return nil
}

func (r *stubChatroomRepo) SetChatroomSummaryIfUnset(chatroomId uuid.UUID, title string, description string) error {
	return nil
}

func newChatroomTestApp(chatroomRepo *stubChatroomRepo) *fiber.App {
	app := fiber.New()
	h := NewChatroomHandler(chatroomRepo)
	app.Post("/chatrooms", h.CreateChatroom)
	app.Get("/chatrooms", h.GetChatrooms)
	app.Get("/chatrooms/:chatroomId", h.GetChatroom)
	app.Delete("/chatrooms/:chatroomId", h.DeleteChatroom)
	return app
}

func TestCreateChatroom(t *testing.T) {
	app := newChatroomTestApp(&stubChatroomRepo{})

	req := httptest.NewRequest("POST", "/chatrooms", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Contains(t, body, "chatroom")
}

func TestGetChatroomNotFound(t *testing.T) {
	app := newChatroomTestApp(&stubChatroomRepo{})

	req := httptest.NewRequest("GET", "/chatrooms/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetChatroomInvalidId(t *testing.T) {
	app := newChatroomTestApp(&stubChatroomRepo{})

	req := httptest.NewRequest("GET", "/chatrooms/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteChatroom(t *testing.T) {
	room := &models.Chatroom{UUID: uuid.New()}
	chatroomRepo := &stubChatroomRepo{chatroom: room}
	app := newChatroomTestApp(chatroomRepo)

	req := httptest.NewRequest("DELETE", "/chatrooms/"+room.UUID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, chatroomRepo.deleted, 1)
	assert.Equal(t, room.UUID, chatroomRepo.deleted[0])
}

func TestDeleteChatroomNotFound(t *testing.T) {
	chatroomRepo := &stubChatroomRepo{}
	app := newChatroomTestApp(chatroomRepo)

	req := httptest.NewRequest("DELETE", "/chatrooms/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Empty(t, chatroomRepo.deleted)
}

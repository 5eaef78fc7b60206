package repo

import (
	"time"

	"docuchat-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatroomRepo represents the repository for the chatroom model
type ChatroomRepo struct {
	db *gorm.DB
}

type ChatroomRepoInterface interface {
	CreateChatroom() (*models.Chatroom, error)
	GetChatrooms(limit int, offset int) ([]models.Chatroom, int64, error)
	GetChatroom(chatroomId uuid.UUID) (*models.Chatroom, error)
	DeleteChatroom(chatroomId uuid.UUID) error
	SetChatroomSummaryIfUnset(chatroomId uuid.UUID, title string, description string) error
}

func NewChatroomRepository(db *gorm.DB) ChatroomRepoInterface {
	return &ChatroomRepo{db: db}
}

// CreateChatroom creates a new empty chatroom; title and description are
// filled in by the first completed chat turn.
func (r *ChatroomRepo) CreateChatroom() (*models.Chatroom, error) {
	chatroom := &models.Chatroom{
		UUID:      uuid.New(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := r.db.Create(chatroom).Error; err != nil {
		return nil, err
	}
	return chatroom, nil
}

// GetChatrooms returns chatrooms newest-first plus the total count
func (r *ChatroomRepo) GetChatrooms(limit int, offset int) ([]models.Chatroom, int64, error) {
	var chatrooms []models.Chatroom
	var total int64

	// sane defaults + cap
	const DefaultLimit = 20
	const MaxLimit = 100
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	if err := r.db.Model(&models.Chatroom{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&chatrooms).Error; err != nil {
		return nil, 0, err
	}

	return chatrooms, total, nil
}

// GetChatroom returns the chatroom or nil when it does not exist
func (r *ChatroomRepo) GetChatroom(chatroomId uuid.UUID) (*models.Chatroom, error) {
	var chatroom models.Chatroom
	result := r.db.Where("uuid = ?", chatroomId).First(&chatroom)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &chatroom, nil
}

// DeleteChatroom deletes a chatroom and cascades to its messages and their
// citations in one transaction.
func (r *ChatroomRepo) DeleteChatroom(chatroomId uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		messageIds := tx.Model(&models.Message{}).
			Select("uuid").
			Where("chatroom_uuid = ?", chatroomId)

		if err := tx.Where("message_uuid IN (?)", messageIds).
			Delete(&models.Citation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("chatroom_uuid = ?", chatroomId).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}

		return tx.Where("uuid = ?", chatroomId).
			Delete(&models.Chatroom{}).Error
	})
}

// SetChatroomSummaryIfUnset sets title and description from the first
// completed turn. The title guard keeps later turns (or a racing first turn)
// from overwriting an existing summary.
func (r *ChatroomRepo) SetChatroomSummaryIfUnset(chatroomId uuid.UUID, title string, description string) error {
	return r.db.Model(&models.Chatroom{}).
		Where("uuid = ? AND title IS NULL", chatroomId).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
			"updated_at":  time.Now(),
		}).Error
}

package repo

import (
	"errors"
	"time"

	"docuchat-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound   = errors.New("message not found")
	ErrCommentNotAllowed = errors.New("comments can only be attached to assistant messages")
)

// MessageRepo represents the repository for the message model
type MessageRepo struct {
	db *gorm.DB
}

type MessageRepoInterface interface {
	GetMessage(messageId uuid.UUID) (*models.Message, error)
	GetMessagesByChatroomId(chatroomId uuid.UUID, limit int, offset int) ([]models.Message, int64, error)
	GetMessagesWithComment(limit int, offset int) ([]models.Message, int64, error)
	UpsertMessageComment(messageId uuid.UUID, reaction models.Reaction, content string) error
	CreateTurn(userMessage *models.Message, assistantMessage *models.Message, citations []models.Citation) error
}

func NewMessageRepository(db *gorm.DB) MessageRepoInterface {
	return &MessageRepo{db: db}
}

// GetMessage returns the message or nil when it does not exist
func (r *MessageRepo) GetMessage(messageId uuid.UUID) (*models.Message, error) {
	var message models.Message
	result := r.db.Where("uuid = ?", messageId).First(&message)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &message, nil
}

// GetMessagesByChatroomId returns messages newest-first plus the total count
func (r *MessageRepo) GetMessagesByChatroomId(chatroomId uuid.UUID, limit int, offset int) ([]models.Message, int64, error) {
	var messages []models.Message
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

	base := r.db.Model(&models.Message{}).Where("chatroom_uuid = ?", chatroomId)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := base.Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// GetMessagesWithComment returns messages carrying a reaction or comment text
func (r *MessageRepo) GetMessagesWithComment(limit int, offset int) ([]models.Message, int64, error) {
	var messages []models.Message
	var total int64

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	base := r.db.Model(&models.Message{}).
		Where("comment_reaction IS NOT NULL OR comment_content IS NOT NULL")

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := base.Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// UpsertMessageComment attaches or replaces the reaction and comment text of
// an assistant message. User messages cannot carry comments.
func (r *MessageRepo) UpsertMessageComment(messageId uuid.UUID, reaction models.Reaction, content string) error {
	var message models.Message
	result := r.db.Where("uuid = ?", messageId).First(&message)
	if result.Error == gorm.ErrRecordNotFound {
		return ErrMessageNotFound
	}
	if result.Error != nil {
		return result.Error
	}

	if message.Sender != models.SenderAssistant {
		return ErrCommentNotAllowed
	}

	return r.db.Model(&message).Updates(map[string]interface{}{
		"comment_reaction": reaction,
		"comment_content":  content,
		"updated_at":       time.Now(),
	}).Error
}

// CreateTurn persists one chat turn atomically: the user message, the
// assistant message linked to it, and the assistant's citations.
func (r *MessageRepo) CreateTurn(userMessage *models.Message, assistantMessage *models.Message, citations []models.Citation) error {
	now := time.Now()

	userMessage.UUID = uuid.New()
	userMessage.CreatedAt = now
	userMessage.UpdatedAt = now

	assistantMessage.UUID = uuid.New()
	assistantMessage.PreviousMessageUUID = &userMessage.UUID
	assistantMessage.CreatedAt = now
	assistantMessage.UpdatedAt = now

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userMessage).Error; err != nil {
			return err
		}

		if err := tx.Create(assistantMessage).Error; err != nil {
			return err
		}

		for i := range citations {
			citations[i].UUID = uuid.New()
			citations[i].MessageUUID = assistantMessage.UUID
			citations[i].CreatedAt = now
			if err := tx.Create(&citations[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

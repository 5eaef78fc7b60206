package models

import (
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser      Sender = "USER"
	SenderAssistant Sender = "ASSISTANT"
)

type Reaction string

const (
	ReactionLike    Reaction = "LIKE"
	ReactionDislike Reaction = "DISLIKE"
)

// Message is one side of a chat turn. PreviousMessageUUID links an assistant
// reply to the user message it answers (a linked pair, not a tree).
// Messages are immutable except for the comment fields and are only removed
// via chatroom cascade.
type Message struct {
	UUID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"uuid"`
	ChatroomUUID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"chatroom_uuid"`
	Sender              Sender     `gorm:"not null" json:"sender"`
	Content             string     `gorm:"not null" json:"content"`
	PreviousMessageUUID *uuid.UUID `gorm:"type:uuid;index" json:"previous_message_uuid"`
	// ExecutionTime is wall-clock milliseconds for the turn, assistant messages only.
	ExecutionTime   *int64    `json:"execution_time"`
	CommentReaction *Reaction `json:"comment_reaction"`
	CommentContent  *string   `json:"comment_content"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

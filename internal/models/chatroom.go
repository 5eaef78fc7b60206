package models

import (
	"time"

	"github.com/google/uuid"
)

// Chatroom groups an ordered history of chat turns. Title and description
// stay nil until the first completed turn fills them in.
type Chatroom struct {
	UUID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"uuid"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Citation is one deduplicated source passage cited by an assistant message.
// Position is the 1-based order of first appearance in the stream.
type Citation struct {
	UUID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"uuid"`
	MessageUUID uuid.UUID      `gorm:"type:uuid;not null;index" json:"message_uuid"`
	Position    int            `gorm:"not null" json:"position"`
	PassageID   string         `gorm:"not null" json:"passage_id"`
	Content     string         `gorm:"not null" json:"content"`
	Metadata    datatypes.JSON `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}

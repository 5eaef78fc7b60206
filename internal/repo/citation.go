package repo

import (
	"docuchat-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CitationRepo represents the repository for the citation model. Citations
// are written with their turn (see MessageRepo.CreateTurn); this repo only
// reads them back.
type CitationRepo struct {
	db *gorm.DB
}

type CitationRepoInterface interface {
	GetCitationsByMessageId(messageId uuid.UUID) ([]models.Citation, error)
}

func NewCitationRepository(db *gorm.DB) CitationRepoInterface {
	return &CitationRepo{db: db}
}

func (r *CitationRepo) GetCitationsByMessageId(messageId uuid.UUID) ([]models.Citation, error) {
	var citations []models.Citation
	err := r.db.Where("message_uuid = ?", messageId).
		Order("position asc").
		Find(&citations).Error
	return citations, err
}

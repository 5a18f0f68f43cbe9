package repository

import (
	"time"

	"safechain/internal/models"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CountSince counts a user's chat calls at or after the cutoff (normally local
// midnight, for the daily quota).
func (r *ChatRepository) CountSince(userID uint, cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&models.ChatUsage{}).
		Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Count(&n).Error
	return n, err
}

func (r *ChatRepository) Record(userID uint) error {
	return r.db.Create(&models.ChatUsage{UserID: userID}).Error
}

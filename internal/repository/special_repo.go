package repository

import (
	"time"

	"safechain/internal/models"

	"gorm.io/gorm"
)

type SpecialRepository struct {
	db *gorm.DB
}

func NewSpecialRepository(db *gorm.DB) *SpecialRepository {
	return &SpecialRepository{db: db}
}

// ActiveAt returns the most recently started special live at the given time,
// or gorm.ErrRecordNotFound.
func (r *SpecialRepository) ActiveAt(now time.Time) (*models.DailySpecial, error) {
	var s models.DailySpecial
	err := r.db.Preload("Tier").
		Where("is_active = ? AND start_time <= ? AND end_time >= ?", true, now, now).
		Order("start_time DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SpecialRepository) Create(s *models.DailySpecial) error {
	return r.db.Create(s).Error
}

func (r *SpecialRepository) List(limit int) ([]models.DailySpecial, error) {
	var list []models.DailySpecial
	err := r.db.Preload("Tier").Order("start_time DESC").Limit(limit).Find(&list).Error
	return list, err
}

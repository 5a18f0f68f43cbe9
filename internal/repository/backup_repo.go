package repository

import (
	"safechain/internal/models"

	"gorm.io/gorm"
)

type BackupRepository struct {
	db *gorm.DB
}

func NewBackupRepository(db *gorm.DB) *BackupRepository {
	return &BackupRepository{db: db}
}

func (r *BackupRepository) Create(b *models.Backup) error {
	return r.db.Create(b).Error
}

func (r *BackupRepository) List(limit int) ([]models.Backup, error) {
	var list []models.Backup
	err := r.db.Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

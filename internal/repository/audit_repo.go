package repository

import (
	"safechain/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Log appends an admin activity entry. Failures are returned but callers
// generally log and continue; the audit trail must not block the action.
func (r *AuditRepository) Log(adminID uint, action, targetModel string, targetID *uint, details string) error {
	return r.db.Create(&models.AdminActivityLog{
		AdminUserID: adminID,
		Action:      action,
		TargetModel: targetModel,
		TargetID:    targetID,
		Details:     details,
	}).Error
}

func (r *AuditRepository) ListRecent(targetModel string, limit int) ([]models.AdminActivityLog, error) {
	q := r.db.Model(&models.AdminActivityLog{})
	if targetModel != "" {
		q = q.Where("target_model = ?", targetModel)
	}
	var list []models.AdminActivityLog
	err := q.Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *AuditRepository) List(page, limit int) ([]models.AdminActivityLog, int64, error) {
	var total int64
	r.db.Model(&models.AdminActivityLog{}).Count(&total)
	var list []models.AdminActivityLog
	err := r.db.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

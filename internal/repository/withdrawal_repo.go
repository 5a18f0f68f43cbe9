package repository

import (
	"safechain/internal/models"

	"gorm.io/gorm"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(w *models.Withdrawal) error {
	return r.db.Create(w).Error
}

func (r *WithdrawalRepository) GetByID(id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.Preload("User").First(&w, id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepository) ListByUser(userID uint) ([]models.Withdrawal, error) {
	var list []models.Withdrawal
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *WithdrawalRepository) List(status string, page, limit int) ([]models.Withdrawal, int64, error) {
	q := r.db.Model(&models.Withdrawal{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.Withdrawal
	err := q.Preload("User").Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

package repository

import (
	"safechain/internal/models"

	"gorm.io/gorm"
)

type VoucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

func (r *VoucherRepository) Create(v *models.Voucher) error {
	return r.db.Create(v).Error
}

func (r *VoucherRepository) GetByID(id uint) (*models.Voucher, error) {
	var v models.Voucher
	err := r.db.Preload("User").First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VoucherRepository) ListByUser(userID uint) ([]models.Voucher, error) {
	var list []models.Voucher
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *VoucherRepository) List(status string, page, limit int) ([]models.Voucher, int64, error) {
	q := r.db.Model(&models.Voucher{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.Voucher
	err := q.Preload("User").Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

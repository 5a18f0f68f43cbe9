package repository

import (
	"time"

	"safechain/internal/domain"
	"safechain/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DepositRepository struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

func (r *DepositRepository) Create(d *models.Deposit) error {
	return r.db.Create(d).Error
}

func (r *DepositRepository) GetByID(id uint) (*models.Deposit, error) {
	var d models.Deposit
	err := r.db.Preload("User").First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DepositRepository) ListByUser(userID uint) ([]models.Deposit, error) {
	var list []models.Deposit
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// List returns deposits with an optional status filter, newest first.
func (r *DepositRepository) List(status string, page, limit int) ([]models.Deposit, int64, error) {
	q := r.db.Model(&models.Deposit{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.Deposit
	err := q.Preload("User").Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

// ListByDateRange returns deposits created in [from, to], optionally filtered
// by status, for the verification report.
func (r *DepositRepository) ListByDateRange(from, to time.Time, status string) ([]models.Deposit, error) {
	q := r.db.Preload("User").Where("created_at BETWEEN ? AND ?", from, to)
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	var list []models.Deposit
	err := q.Order("created_at ASC").Find(&list).Error
	return list, err
}

// CountRecentByUser counts a user's deposits created after the cutoff, used by
// the duplicate-submission heuristic.
func (r *DepositRepository) CountRecentByUser(userID uint, since time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&models.Deposit{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&n).Error
	return n, err
}

func (r *DepositRepository) SumApprovedByUser(userID uint) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.Model(&models.Deposit{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND status = ?", userID, domain.StatusApproved).
		Scan(&row).Error
	return row.Total, err
}

// StatusCounts returns per-status counts and the pending amount for the
// deposit dashboard.
func (r *DepositRepository) StatusCounts() (pending, approved, rejected int64, pendingAmount decimal.Decimal, err error) {
	m := r.db.Model(&models.Deposit{})
	if err = m.Where("status = ?", domain.StatusPending).Count(&pending).Error; err != nil {
		return
	}
	if err = r.db.Model(&models.Deposit{}).Where("status = ?", domain.StatusApproved).Count(&approved).Error; err != nil {
		return
	}
	if err = r.db.Model(&models.Deposit{}).Where("status = ?", domain.StatusRejected).Count(&rejected).Error; err != nil {
		return
	}
	var row struct{ Total decimal.Decimal }
	err = r.db.Model(&models.Deposit{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("status = ?", domain.StatusPending).
		Scan(&row).Error
	pendingAmount = row.Total
	return
}

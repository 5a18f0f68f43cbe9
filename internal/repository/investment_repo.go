package repository

import (
	"time"

	"safechain/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvestmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(i *models.Investment) error {
	return r.db.Create(i).Error
}

func (r *InvestmentRepository) GetByIDForUser(id, userID uint) (*models.Investment, error) {
	var i models.Investment
	err := r.db.Preload("Tier").Where("id = ? AND user_id = ?", id, userID).First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InvestmentRepository) ListByUser(userID uint) ([]models.Investment, error) {
	var list []models.Investment
	err := r.db.Preload("Tier").Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *InvestmentRepository) ListActiveByUser(userID uint) ([]models.Investment, error) {
	var list []models.Investment
	err := r.db.Preload("Tier").Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

// ActiveByUserAndTier returns the active investment a user holds in a tier,
// or gorm.ErrRecordNotFound.
func (r *InvestmentRepository) ActiveByUserAndTier(userID, tierID uint) (*models.Investment, error) {
	var i models.Investment
	err := r.db.Where("user_id = ? AND tier_id = ? AND is_active = ?", userID, tierID, true).First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// ListMaturedUnsettled returns investments past their end date that are still
// active with profit unpaid, optionally limited to one user (userID 0 = all).
func (r *InvestmentRepository) ListMaturedUnsettled(userID uint, now time.Time) ([]models.Investment, error) {
	q := r.db.Where("is_active = ? AND profit_paid = ? AND end_date <= ?", true, false, now)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var list []models.Investment
	err := q.Find(&list).Error
	return list, err
}

// SumCompletedReturns totals return amounts paid out across the platform.
func (r *InvestmentRepository) SumCompletedReturns() (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.Model(&models.Investment{}).
		Select("COALESCE(SUM(return_amount), 0) as total").
		Where("is_active = ?", false).
		Scan(&row).Error
	return row.Total, err
}

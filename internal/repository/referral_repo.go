package repository

import (
	"safechain/internal/domain"
	"safechain/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) Create(ref *models.Referral) error {
	return r.db.Create(ref).Error
}

func (r *ReferralRepository) ListByInviter(inviterID uint) ([]models.Referral, error) {
	var list []models.Referral
	err := r.db.Preload("Invitee").Where("inviter_id = ?", inviterID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *ReferralRepository) CountByInviter(inviterID uint, status string) (int64, error) {
	q := r.db.Model(&models.Referral{}).Where("inviter_id = ?", inviterID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *ReferralRepository) ListRewardsByReferrer(referrerID uint) ([]models.ReferralReward, error) {
	var list []models.ReferralReward
	err := r.db.Where("referrer_id = ?", referrerID).Order("awarded_at DESC").Find(&list).Error
	return list, err
}

func (r *ReferralRepository) SumRewardsByReferrer(referrerID uint) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.Model(&models.ReferralReward{}).
		Select("COALESCE(SUM(reward_amount), 0) as total").
		Where("referrer_id = ?", referrerID).
		Scan(&row).Error
	return row.Total, err
}

// TopReferrer is a leaderboard row for the home page.
type TopReferrer struct {
	Username      string          `json:"username"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
}

func (r *ReferralRepository) TopReferrers(limit int) ([]TopReferrer, error) {
	var rows []TopReferrer
	err := r.db.Model(&models.ReferralReward{}).
		Select("users.username as username, SUM(referral_rewards.reward_amount) as total_earnings").
		Joins("JOIN users ON users.id = referral_rewards.referrer_id").
		Group("users.username").
		Order("total_earnings DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ActiveCount counts referrals already activated by an approved deposit.
func (r *ReferralRepository) ActiveCount(inviterID uint) (int64, error) {
	return r.CountByInviter(inviterID, domain.ReferralStatusActive)
}

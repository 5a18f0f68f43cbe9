package repository

import (
	"safechain/internal/models"

	"gorm.io/gorm"
)

type TierRepository struct {
	db *gorm.DB
}

func NewTierRepository(db *gorm.DB) *TierRepository {
	return &TierRepository{db: db}
}

func (r *TierRepository) GetByID(id uint) (*models.InvestmentTier, error) {
	var t models.InvestmentTier
	err := r.db.First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TierRepository) List() ([]models.InvestmentTier, error) {
	var tiers []models.InvestmentTier
	err := r.db.Order("amount ASC").Find(&tiers).Error
	return tiers, err
}

// MinTierID returns the ID of the cheapest tier (the entry-level product).
func (r *TierRepository) MinTierID() (uint, error) {
	var t models.InvestmentTier
	err := r.db.Order("amount ASC").First(&t).Error
	if err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (r *TierRepository) Create(t *models.InvestmentTier) error {
	return r.db.Create(t).Error
}

func (r *TierRepository) Update(t *models.InvestmentTier) error {
	return r.db.Save(t).Error
}

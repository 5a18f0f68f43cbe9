package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailySpecial boosts a tier's return for a limited window. Display-only: the
// tier listing advertises the multiplied return while the special is live.
type DailySpecial struct {
	ID                      uint            `gorm:"primaryKey" json:"id"`
	TierID                  uint            `gorm:"not null;index" json:"tier_id"`
	StartTime               time.Time       `gorm:"not null" json:"start_time"`
	EndTime                 time.Time       `gorm:"not null" json:"end_time"`
	SpecialReturnMultiplier decimal.Decimal `gorm:"type:decimal(4,2);not null;default:1" json:"special_return_multiplier"`
	IsActive                bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
	DeletedAt               gorm.DeletedAt  `gorm:"index" json:"-"`

	Tier InvestmentTier `gorm:"foreignKey:TierID" json:"tier,omitempty"`
}

func (DailySpecial) TableName() string { return "daily_specials" }

func (s *DailySpecial) SpecialReturnAmount() decimal.Decimal {
	return s.Tier.ReturnAmount.Mul(s.SpecialReturnMultiplier)
}

func (s *DailySpecial) IsCurrentlyActive(now time.Time) bool {
	return s.IsActive && !now.Before(s.StartTime) && !now.After(s.EndTime)
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Investment struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	TierID       uint            `gorm:"not null;index" json:"tier_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	ReturnAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"return_amount"`
	StartDate    time.Time       `gorm:"not null" json:"start_date"`
	EndDate      time.Time       `gorm:"not null;index" json:"end_date"`
	IsActive     bool            `gorm:"not null;default:true;index" json:"is_active"`
	ProfitPaid   bool            `gorm:"not null;default:false" json:"profit_paid"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	User User           `gorm:"foreignKey:UserID" json:"-"`
	Tier InvestmentTier `gorm:"foreignKey:TierID" json:"tier,omitempty"`
}

func (Investment) TableName() string { return "investments" }

// IsComplete reports whether the investment period has elapsed.
func (i *Investment) IsComplete(now time.Time) bool {
	return !now.Before(i.EndDate)
}

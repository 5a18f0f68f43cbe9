package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentTier is a fixed-term, fixed-return product (amount in,
// return_amount out, after duration_days). Admin-managed reference data.
type InvestmentTier struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	ReturnAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"return_amount"`
	DurationDays int             `gorm:"not null" json:"duration_days"`
	MinLevel     int             `gorm:"not null;default:1" json:"min_level"`
	LogoURL      string          `gorm:"size:512" json:"logo_url"`
	Description  string          `gorm:"type:text" json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (InvestmentTier) TableName() string { return "investment_tiers" }

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletTransaction records every credit and debit so the wallet view can show
// a full history. Positive amounts are credits, negative are debits.
type WalletTransaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type      string          `gorm:"size:30;not null;index" json:"type"` // DEPOSIT, WITHDRAWAL, INVESTMENT, RETURN, VOUCHER, REFERRAL_BONUS
	Reference string          `gorm:"size:128" json:"reference"`
	CreatedAt time.Time       `json:"created_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (WalletTransaction) TableName() string { return "wallet_transactions" }

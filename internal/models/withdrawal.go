package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Withdrawal struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:20;not null" json:"payment_method"` // bank | cash

	// Bank details, filled for bank transfers.
	AccountHolderName string `gorm:"size:100" json:"account_holder_name"`
	BankName          string `gorm:"size:100" json:"bank_name"`
	AccountNumber     string `gorm:"size:50" json:"account_number"`
	BranchCode        string `gorm:"size:20" json:"branch_code"`
	AccountType       string `gorm:"size:50" json:"account_type"`

	Status     string         `gorm:"size:10;not null;index;default:'pending'" json:"status"`
	AdminNotes string         `gorm:"type:text" json:"admin_notes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Withdrawal) TableName() string { return "withdrawals" }

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deposit is a user-submitted funding request. The wallet is credited only
// when an admin moves it into the approved status, exactly once.
type Deposit struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:20;not null" json:"payment_method"` // eft | cash
	ProofImage    string          `gorm:"size:512" json:"proof_image"`
	Status        string          `gorm:"size:10;not null;index;default:'pending'" json:"status"`
	AdminNotes    string          `gorm:"type:text" json:"admin_notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Deposit) TableName() string { return "deposits" }

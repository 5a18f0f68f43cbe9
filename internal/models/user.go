package models

import (
	"time"

	"safechain/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Level thresholds on cumulative invested amount.
var (
	Level2Threshold = decimal.NewFromInt(10000)
	Level3Threshold = decimal.NewFromInt(20000)
)

type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Username      string          `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email         string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash  string          `gorm:"size:255" json:"-"`
	Phone         string          `gorm:"size:20" json:"phone"`
	Role          string          `gorm:"size:20;not null;index;default:'USER'" json:"role"` // USER | ADMIN
	ProfileImage  string          `gorm:"size:512" json:"profile_image"`
	AutoReinvest  bool            `gorm:"default:false" json:"auto_reinvest"`
	TotalInvested decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_invested"`
	Level         int             `gorm:"not null;default:1" json:"level"`
	LastIP        string          `gorm:"size:45" json:"-"`
	ReferredByID  *uint           `gorm:"index" json:"referred_by_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	ReferredBy *User `gorm:"foreignKey:ReferredByID" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }

// UpdateLevel raises the level to whatever total invested earns. It never
// lowers the level, so a manual promotion survives later investments.
func (u *User) UpdateLevel() {
	earned := 1
	switch {
	case u.TotalInvested.GreaterThanOrEqual(Level3Threshold):
		earned = 3
	case u.TotalInvested.GreaterThanOrEqual(Level2Threshold):
		earned = 2
	}
	if earned > u.Level {
		u.Level = earned
	}
}

// NextLevelThreshold returns the amount still needed to reach the next level.
func (u *User) NextLevelThreshold() decimal.Decimal {
	switch u.Level {
	case 1:
		return Level2Threshold.Sub(u.TotalInvested)
	case 2:
		return Level3Threshold.Sub(u.TotalInvested)
	}
	return decimal.Zero
}

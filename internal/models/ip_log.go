package models

import "time"

// IPLog records the client IP used for an investment in the entry-level tier,
// for abuse review.
type IPLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	IPAddress string    `gorm:"size:45;not null" json:"ip_address"`
	TierID    uint      `gorm:"not null;index" json:"tier_id"`
	CreatedAt time.Time `json:"created_at"`

	User User           `gorm:"foreignKey:UserID" json:"-"`
	Tier InvestmentTier `gorm:"foreignKey:TierID" json:"-"`
}

func (IPLog) TableName() string { return "ip_logs" }

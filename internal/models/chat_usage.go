package models

import "time"

// ChatUsage rows count toward the per-user daily chat quota.
type ChatUsage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (ChatUsage) TableName() string { return "chat_usages" }

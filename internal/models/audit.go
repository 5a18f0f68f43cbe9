package models

import "time"

// AdminActivityLog is an append-only audit trail written by every admin
// mutation. No update or delete path exists in normal operation.
type AdminActivityLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AdminUserID uint      `gorm:"not null;index" json:"admin_user_id"`
	Action      string    `gorm:"size:100;not null;index" json:"action"`
	TargetModel string    `gorm:"size:100;index" json:"target_model"`
	TargetID    *uint     `json:"target_id,omitempty"`
	Details     string    `gorm:"type:text" json:"details"`
	CreatedAt   time.Time `json:"created_at"`

	AdminUser User `gorm:"foreignKey:AdminUserID" json:"-"`
}

func (AdminActivityLog) TableName() string { return "admin_activity_logs" }

package models

import (
	"fmt"
	"time"
)

type Backup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FileName  string    `gorm:"size:255;not null" json:"file_name"`
	Size      int64     `gorm:"not null" json:"size"` // bytes
	Status    string    `gorm:"size:20;not null;default:'in_progress'" json:"status"` // success | failed | in_progress
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func (Backup) TableName() string { return "backups" }

// SizeDisplay returns a human-readable file size.
func (b *Backup) SizeDisplay() string {
	size := float64(b.Size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

package model

import "time"

// Group is a theme-based peer group created by a Therapeutic Aide.
type Group struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex"`
	Theme       string
	Description string
	MaxMembers  int
	CreatedBy   int64 // TelegramID of the creating AT
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

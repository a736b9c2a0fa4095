package model

import "time"

// Activity is a scheduled, titled event scoped to exactly one group.
type Activity struct {
	ID           uint `gorm:"primaryKey"`
	GroupID      uint `gorm:"index"`
	Title        string
	Description  string
	ScheduledFor time.Time `gorm:"index"`
	Duration     int       // minutes, 0 when not set
	CreatedBy    int64     // TelegramID of the creating AT
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

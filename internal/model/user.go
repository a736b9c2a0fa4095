package model

import "time"

// Role marks what a participant is allowed to do.
type Role string

const (
	// RoleAutistic is an autistic end-user: joins groups, sees activities.
	RoleAutistic Role = "autista"
	// RoleAT is a Therapeutic Aide: additionally creates groups and activities.
	RoleAT Role = "at"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleAutistic || r == RoleAT
}

// User stores Telegram user metadata plus their role and current group.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	Name       string
	Role       Role
	GroupID    *uint `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsAT reports whether the user holds the Therapeutic Aide role.
func (u User) IsAT() bool {
	return u.Role == RoleAT
}

package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleEmployee UserRole = "EMPLOYEE"
)

// ParseRole normalizes a role string at the boundary. Comparisons elsewhere
// are plain equality on the parsed value.
func ParseRole(s string) (UserRole, bool) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleEmployee:
		return RoleEmployee, true
	}
	return "", false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email                  string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	LoginID                *string  `gorm:"uniqueIndex;size:20" json:"login_id,omitempty"`
	PasswordHash           string   `gorm:"not null" json:"-"`
	Role                   UserRole `gorm:"type:varchar(20);not null" json:"role"`
	PasswordChangeRequired bool     `gorm:"not null;default:false" json:"password_change_required"`
}

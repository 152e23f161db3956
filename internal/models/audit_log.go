package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   uint   `gorm:"not null;index" json:"user_id"`
	Entity   string `gorm:"size:50;not null" json:"entity"` // "company", "employee", "leave", "payroll"
	EntityID uint   `json:"entity_id"`
	Action   string `gorm:"size:50;not null" json:"action"` // "create", "update", "delete", "approve", ...
	Details  string `gorm:"type:text" json:"details,omitempty"`
}

package models

import "time"

// EmployeeProfile is the 1:1 extension of a User. The pair is always created
// inside one transaction; neither side may exist alone.
type EmployeeProfile struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	UserID     uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName  string     `gorm:"size:100;not null" json:"first_name"`
	LastName   string     `gorm:"size:100;not null" json:"last_name"`
	Phone      string     `gorm:"size:50" json:"phone,omitempty"`
	Department string     `gorm:"size:100" json:"department,omitempty"`
	Position   string     `gorm:"size:100" json:"position,omitempty"`
	HireDate   *time.Time `gorm:"type:date" json:"hire_date,omitempty"`
}

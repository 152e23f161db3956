package models

import "time"

// Payroll has exactly one entry per (user, month, year).
type Payroll struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID     uint    `gorm:"not null;uniqueIndex:idx_payroll_user_period" json:"user_id"`
	Month      int     `gorm:"not null;uniqueIndex:idx_payroll_user_period" json:"month"`
	Year       int     `gorm:"not null;uniqueIndex:idx_payroll_user_period" json:"year"`
	BaseSalary float64 `gorm:"not null" json:"base_salary"`
	Deductions float64 `gorm:"not null;default:0" json:"deductions"`
	NetSalary  float64 `gorm:"not null" json:"net_salary"`
}

package models

import "time"

// Attendance holds one row per user per calendar day. Date is stored as
// YYYY-MM-DD so range queries compare lexicographically on both drivers.
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   uint       `gorm:"not null;uniqueIndex:idx_attendance_user_date" json:"user_id"`
	Date     string     `gorm:"size:10;not null;uniqueIndex:idx_attendance_user_date" json:"date"`
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
}

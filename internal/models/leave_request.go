package models

import "time"

type LeaveType string

const (
	LeavePaid   LeaveType = "PAID"
	LeaveSick   LeaveType = "SICK"
	LeaveUnpaid LeaveType = "UNPAID"
)

func ValidLeaveType(t string) bool {
	switch LeaveType(t) {
	case LeavePaid, LeaveSick, LeaveUnpaid:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

type LeaveRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID        uint        `gorm:"not null;index" json:"user_id"`
	LeaveType     LeaveType   `gorm:"type:varchar(10);not null" json:"leave_type"`
	StartDate     string      `gorm:"size:10;not null" json:"start_date"`
	EndDate       string      `gorm:"size:10;not null" json:"end_date"`
	Reason        string      `gorm:"type:text" json:"reason,omitempty"`
	Status        LeaveStatus `gorm:"type:varchar(10);not null;default:PENDING" json:"status"`
	AdminComments string      `gorm:"type:text" json:"admin_comments,omitempty"`
}

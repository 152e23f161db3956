package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dayflow/internal/database"
	"dayflow/internal/httpx"
	"dayflow/internal/middleware"
	"dayflow/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type leaveRequestBody struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// CreateLeaveRequest submits a new request in PENDING state.
func CreateLeaveRequest(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	var req leaveRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingFields, "Leave type, start date and end date are required")
		return
	}

	if req.LeaveType == "" || req.StartDate == "" || req.EndDate == "" {
		httpx.ErrorDetails(c, http.StatusBadRequest, httpx.CodeMissingFields,
			"Leave type, start date and end date are required",
			gin.H{"required": []string{"leave_type", "start_date", "end_date"}})
		return
	}

	if !models.ValidLeaveType(req.LeaveType) {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidLeaveType, "Leave type must be PAID, SICK, or UNPAID")
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidDateRange, "Dates must be formatted YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidDateRange, "Dates must be formatted YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidDateRange, "End date must be after start date")
		return
	}

	record := models.LeaveRequest{
		UserID:    ident.UserID,
		LeaveType: models.LeaveType(req.LeaveType),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		Status:    models.LeavePending,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		httpx.Internal(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// MyLeaveRequests lists the caller's own requests, newest first.
func MyLeaveRequests(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	var records []models.LeaveRequest
	err := database.DB.
		Where("user_id = ?", ident.UserID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// leaveRow is the admin view joined with the requester's identity.
type leaveRow struct {
	ID            uint               `json:"id"`
	UserID        uint               `json:"user_id"`
	LeaveType     models.LeaveType   `json:"leave_type"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	Reason        string             `json:"reason,omitempty"`
	Status        models.LeaveStatus `json:"status"`
	AdminComments string             `json:"admin_comments,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Email         string             `json:"email"`
	FirstName     *string            `json:"first_name"`
	LastName      *string            `json:"last_name"`
}

func leaveAdminQuery() *gorm.DB {
	return database.DB.Table("leave_requests").
		Select(`leave_requests.id, leave_requests.user_id, leave_requests.leave_type,
			leave_requests.start_date, leave_requests.end_date, leave_requests.reason,
			leave_requests.status, leave_requests.admin_comments,
			leave_requests.created_at, leave_requests.updated_at, users.email,
			employee_profiles.first_name, employee_profiles.last_name`).
		Joins("JOIN users ON users.id = leave_requests.user_id").
		Joins("LEFT JOIN employee_profiles ON employee_profiles.user_id = users.id")
}

// PendingLeaveRequests lists PENDING requests oldest first.
func PendingLeaveRequests(c *gin.Context) {
	var rows []leaveRow
	err := leaveAdminQuery().
		Where("leave_requests.status = ?", models.LeavePending).
		Order("leave_requests.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	if rows == nil {
		rows = []leaveRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// AllLeaveRequests lists every request newest first.
func AllLeaveRequests(c *gin.Context) {
	var rows []leaveRow
	err := leaveAdminQuery().
		Order("leave_requests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	if rows == nil {
		rows = []leaveRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// ApproveLeave approves a PENDING request.
func ApproveLeave(c *gin.Context) {
	decideLeave(c, models.LeaveApproved)
}

// RejectLeave rejects a PENDING request.
func RejectLeave(c *gin.Context) {
	decideLeave(c, models.LeaveRejected)
}

type leaveDecisionBody struct {
	AdminComments string `json:"admin_comments"`
}

// decideLeave moves a request out of PENDING; any other starting status is
// rejected and left unchanged.
func decideLeave(c *gin.Context, status models.LeaveStatus) {
	ident, _ := middleware.CurrentIdentity(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, httpx.CodeLeaveNotFound, "Leave request not found")
		return
	}

	var body leaveDecisionBody
	_ = c.ShouldBindJSON(&body)

	var record models.LeaveRequest
	if err := database.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, http.StatusNotFound, httpx.CodeLeaveNotFound, "Leave request not found")
			return
		}
		httpx.Internal(c, err)
		return
	}

	if record.Status != models.LeavePending {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidStatus,
			"Leave request is already "+strings.ToLower(string(record.Status)))
		return
	}

	err = database.DB.Model(&record).Updates(map[string]interface{}{
		"status":         status,
		"admin_comments": body.AdminComments,
	}).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}

	database.CreateAuditLog(ident.UserID, "leave", record.ID, strings.ToLower(string(status)),
		"Leave request "+strings.ToLower(string(status)))

	c.JSON(http.StatusOK, record)
}

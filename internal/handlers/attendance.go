package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dayflow/internal/database"
	"dayflow/internal/httpx"
	"dayflow/internal/middleware"
	"dayflow/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// CheckIn records the caller's check-in for today, once per day.
func CheckIn(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	now := time.Now()
	today := now.Format(dateLayout)

	var count int64
	err := database.DB.Model(&models.Attendance{}).
		Where("user_id = ? AND date = ?", ident.UserID, today).
		Count(&count).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	if count > 0 {
		httpx.Error(c, http.StatusConflict, httpx.CodeDuplicateCheckin, "Already checked in today")
		return
	}

	record := models.Attendance{
		UserID:  ident.UserID,
		Date:    today,
		CheckIn: &now,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		// unique (user, date) backstops a concurrent double check-in
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.Error(c, http.StatusConflict, httpx.CodeDuplicateCheckin, "Already checked in today")
			return
		}
		httpx.Internal(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// CheckOut stamps the check-out on today's record; check-in must come first.
func CheckOut(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	now := time.Now()
	today := now.Format(dateLayout)

	var record models.Attendance
	err := database.DB.
		Where("user_id = ? AND date = ?", ident.UserID, today).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, http.StatusBadRequest, httpx.CodeNoCheckin, "No check-in found for today")
			return
		}
		httpx.Internal(c, err)
		return
	}

	if record.CheckOut != nil {
		httpx.Error(c, http.StatusConflict, httpx.CodeAlreadyCheckedOut, "Already checked out today")
		return
	}

	if err := database.DB.Model(&record).Update("check_out", &now).Error; err != nil {
		httpx.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// DailyAttendance returns the caller's record for a given date.
func DailyAttendance(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	date := c.Query("date")
	if date == "" {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingDate, "Date parameter is required (format: YYYY-MM-DD)")
		return
	}

	var records []models.Attendance
	err := database.DB.
		Where("user_id = ? AND date = ?", ident.UserID, date).
		Find(&records).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// WeeklyAttendance returns a 7-day window starting at startDate.
func WeeklyAttendance(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	startDate := c.Query("startDate")
	if startDate == "" {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingStartDate, "Start date parameter is required (format: YYYY-MM-DD)")
		return
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidDate, "Start date must be formatted YYYY-MM-DD")
		return
	}
	end := start.AddDate(0, 0, 7).Format(dateLayout)

	var records []models.Attendance
	err = database.DB.
		Where("user_id = ? AND date >= ? AND date < ?", ident.UserID, startDate, end).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// attendanceRow is the admin view joined with the employee's identity.
type attendanceRow struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	Date      string     `json:"date"`
	CheckIn   *time.Time `json:"check_in"`
	CheckOut  *time.Time `json:"check_out"`
	CreatedAt time.Time  `json:"created_at"`
	Email     string     `json:"email"`
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
}

// UserAttendance lists a given user's attendance, optionally bounded.
func UserAttendance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
		return
	}

	q := database.DB.Table("attendances").
		Select(`attendances.id, attendances.user_id, attendances.date, attendances.check_in,
			attendances.check_out, attendances.created_at, users.email,
			employee_profiles.first_name, employee_profiles.last_name`).
		Joins("JOIN users ON users.id = attendances.user_id").
		Joins("LEFT JOIN employee_profiles ON employee_profiles.user_id = users.id").
		Where("attendances.user_id = ?", id)

	if startDate := c.Query("startDate"); startDate != "" {
		q = q.Where("attendances.date >= ?", startDate)
	}
	if endDate := c.Query("endDate"); endDate != "" {
		q = q.Where("attendances.date <= ?", endDate)
	}

	var rows []attendanceRow
	if err := q.Order("attendances.date DESC").Scan(&rows).Error; err != nil {
		httpx.Internal(c, err)
		return
	}
	if rows == nil {
		rows = []attendanceRow{}
	}
	c.JSON(http.StatusOK, rows)
}

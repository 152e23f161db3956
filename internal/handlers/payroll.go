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

// MyPayroll lists the caller's payroll entries, newest period first.
func MyPayroll(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	var records []models.Payroll
	err := database.DB.
		Where("user_id = ?", ident.UserID).
		Order("year DESC, month DESC").
		Find(&records).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// payrollRow is the admin view joined with the employee's identity.
type payrollRow struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	BaseSalary float64   `json:"base_salary"`
	Deductions float64   `json:"deductions"`
	NetSalary  float64   `json:"net_salary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Email      string    `json:"email"`
	FirstName  *string   `json:"first_name"`
	LastName   *string   `json:"last_name"`
}

func payrollAdminQuery() *gorm.DB {
	return database.DB.Table("payrolls").
		Select(`payrolls.id, payrolls.user_id, payrolls.month, payrolls.year,
			payrolls.base_salary, payrolls.deductions, payrolls.net_salary,
			payrolls.created_at, payrolls.updated_at, users.email,
			employee_profiles.first_name, employee_profiles.last_name`).
		Joins("JOIN users ON users.id = payrolls.user_id").
		Joins("LEFT JOIN employee_profiles ON employee_profiles.user_id = users.id")
}

// ListPayroll lists every entry.
func ListPayroll(c *gin.Context) {
	var rows []payrollRow
	err := payrollAdminQuery().
		Order("payrolls.year DESC, payrolls.month DESC, employee_profiles.first_name, employee_profiles.last_name").
		Scan(&rows).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	if rows == nil {
		rows = []payrollRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// UserPayroll lists one employee's entries.
func UserPayroll(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
		return
	}

	var rows []payrollRow
	err = payrollAdminQuery().
		Where("payrolls.user_id = ?", id).
		Order("payrolls.year DESC, payrolls.month DESC").
		Scan(&rows).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	if rows == nil {
		rows = []payrollRow{}
	}
	c.JSON(http.StatusOK, rows)
}

type createPayrollRequest struct {
	UserID     uint     `json:"user_id"`
	Month      int      `json:"month"`
	Year       int      `json:"year"`
	BaseSalary *float64 `json:"base_salary"`
	Deductions *float64 `json:"deductions"`
	NetSalary  *float64 `json:"net_salary"`
}

// CreatePayroll inserts one entry per (user, month, year).
func CreatePayroll(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	var req createPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingFields, "User ID, month, year, base salary, and net salary are required")
		return
	}

	if req.UserID == 0 || req.Month == 0 || req.Year == 0 || req.BaseSalary == nil || req.NetSalary == nil {
		httpx.ErrorDetails(c, http.StatusBadRequest, httpx.CodeMissingFields,
			"User ID, month, year, base salary, and net salary are required",
			gin.H{"required": []string{"user_id", "month", "year", "base_salary", "net_salary"}})
		return
	}

	if req.Month < 1 || req.Month > 12 {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidMonth, "Month must be between 1 and 12")
		return
	}

	deductions := 0.0
	if req.Deductions != nil {
		deductions = *req.Deductions
	}
	if *req.BaseSalary < 0 || *req.NetSalary < 0 || deductions < 0 {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidNumeric, "Salary and deductions must be positive values")
		return
	}

	var user models.User
	if err := database.DB.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
			return
		}
		httpx.Internal(c, err)
		return
	}

	record := models.Payroll{
		UserID:     req.UserID,
		Month:      req.Month,
		Year:       req.Year,
		BaseSalary: *req.BaseSalary,
		Deductions: deductions,
		NetSalary:  *req.NetSalary,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.Error(c, http.StatusConflict, httpx.CodeDuplicatePayroll, "Payroll entry already exists for this user, month, and year")
			return
		}
		httpx.Internal(c, err)
		return
	}

	database.CreateAuditLog(ident.UserID, "payroll", record.ID, "create", "Created payroll entry")

	c.JSON(http.StatusCreated, record)
}

type updatePayrollRequest struct {
	Month      *int     `json:"month"`
	Year       *int     `json:"year"`
	BaseSalary *float64 `json:"base_salary"`
	Deductions *float64 `json:"deductions"`
	NetSalary  *float64 `json:"net_salary"`
}

// UpdatePayroll patches an entry field by field.
func UpdatePayroll(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, httpx.CodePayrollNotFound, "Payroll entry not found")
		return
	}

	var req updatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingFields, "Invalid request body")
		return
	}

	var record models.Payroll
	if err := database.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, http.StatusNotFound, httpx.CodePayrollNotFound, "Payroll entry not found")
			return
		}
		httpx.Internal(c, err)
		return
	}

	if req.Month != nil && (*req.Month < 1 || *req.Month > 12) {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidMonth, "Month must be between 1 and 12")
		return
	}
	if (req.BaseSalary != nil && *req.BaseSalary < 0) ||
		(req.NetSalary != nil && *req.NetSalary < 0) ||
		(req.Deductions != nil && *req.Deductions < 0) {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidNumeric, "Salary and deductions must be positive values")
		return
	}

	updates := map[string]interface{}{}
	if req.Month != nil {
		updates["month"] = *req.Month
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.BaseSalary != nil {
		updates["base_salary"] = *req.BaseSalary
	}
	if req.Deductions != nil {
		updates["deductions"] = *req.Deductions
	}
	if req.NetSalary != nil {
		updates["net_salary"] = *req.NetSalary
	}

	if len(updates) == 0 {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeNoUpdates, "No fields to update")
		return
	}

	if err := database.DB.Model(&record).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.Error(c, http.StatusConflict, httpx.CodeDuplicatePayroll, "Payroll entry already exists for this user, month, and year")
			return
		}
		httpx.Internal(c, err)
		return
	}

	database.CreateAuditLog(ident.UserID, "payroll", record.ID, "update", "Updated payroll entry")

	c.JSON(http.StatusOK, record)
}

// DeletePayroll removes an entry.
func DeletePayroll(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, httpx.CodePayrollNotFound, "Payroll entry not found")
		return
	}

	result := database.DB.Delete(&models.Payroll{}, id)
	if result.Error != nil {
		httpx.Internal(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		httpx.Error(c, http.StatusNotFound, httpx.CodePayrollNotFound, "Payroll entry not found")
		return
	}

	database.CreateAuditLog(ident.UserID, "payroll", uint(id), "delete", "Deleted payroll entry")

	c.JSON(http.StatusOK, gin.H{"message": "Payroll entry deleted successfully", "id": id})
}

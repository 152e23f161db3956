package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"dayflow/internal/database"
	"dayflow/internal/httpx"
	"dayflow/internal/loginid"
	"dayflow/internal/middleware"
	"dayflow/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// employeeRow is the user+profile join returned by employee endpoints.
// Profile fields are pointers because the join is a LEFT JOIN.
type employeeRow struct {
	ID         uint            `json:"id"`
	Email      string          `json:"email"`
	Role       models.UserRole `json:"role"`
	LoginID    *string         `json:"login_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	FirstName  *string         `json:"first_name"`
	LastName   *string         `json:"last_name"`
	Phone      *string         `json:"phone"`
	Department *string         `json:"department"`
	Position   *string         `json:"position"`
	HireDate   *time.Time      `json:"hire_date"`
}

const employeeSelect = `users.id, users.email, users.role, users.login_id, users.created_at,
	employee_profiles.first_name, employee_profiles.last_name, employee_profiles.phone,
	employee_profiles.department, employee_profiles.position, employee_profiles.hire_date`

func employeeQuery() *gorm.DB {
	return database.DB.Table("users").
		Select(employeeSelect).
		Joins("LEFT JOIN employee_profiles ON employee_profiles.user_id = users.id")
}

// ListEmployees returns all employees for admins, the caller's own row
// otherwise.
func ListEmployees(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	var rows []employeeRow
	q := employeeQuery()
	if ident.Role == models.RoleAdmin {
		q = q.Where("users.role = ?", models.RoleEmployee).
			Order("employee_profiles.first_name, employee_profiles.last_name")
	} else {
		q = q.Where("users.id = ?", ident.UserID)
	}

	if err := q.Scan(&rows).Error; err != nil {
		httpx.Internal(c, err)
		return
	}
	if rows == nil {
		rows = []employeeRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// GetEmployee returns one employee; employees may only read themselves.
func GetEmployee(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
		return
	}

	if ident.Role == models.RoleEmployee && ident.UserID != uint(id) {
		httpx.Error(c, http.StatusForbidden, httpx.CodeAccessDenied, "You can only access your own data")
		return
	}

	row, err := fetchEmployeeRow(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
			return
		}
		httpx.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func fetchEmployeeRow(id uint) (*employeeRow, error) {
	var rows []employeeRow
	if err := employeeQuery().Where("users.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

type createEmployeeRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
	HireDate   string `json:"hire_date"`
}

// CreateEmployee creates the user and its profile in one transaction.
// When password is omitted a random one is generated and the account is
// flagged for a forced password change.
func CreateEmployee(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingFields, "Email, first name, and last name are required")
		return
	}

	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		httpx.ErrorDetails(c, http.StatusBadRequest, httpx.CodeMissingFields,
			"Email, first name, and last name are required",
			gin.H{"required": []string{"email", "first_name", "last_name"}})
		return
	}

	if !emailPattern.MatchString(req.Email) {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidEmail, "Invalid email format")
		return
	}

	var hireDate *time.Time
	if req.HireDate != "" {
		d, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidDate, "Hire date must be formatted YYYY-MM-DD")
			return
		}
		hireDate = &d
	}

	password := req.Password
	generated := false
	if password == "" {
		var err error
		password, err = loginid.GeneratePassword(12)
		if err != nil {
			httpx.Internal(c, err)
			return
		}
		generated = true
	}

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		id, err := loginid.Generate(tx, req.FirstName, req.LastName)
		if err != nil {
			return err
		}

		user = models.User{
			Email:                  req.Email,
			LoginID:                &id,
			PasswordHash:           string(hash),
			Role:                   models.RoleEmployee,
			PasswordChangeRequired: generated,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile := models.EmployeeProfile{
			UserID:     user.ID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Phone:      req.Phone,
			Department: req.Department,
			Position:   req.Position,
			HireDate:   hireDate,
		}
		return tx.Create(&profile).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.Error(c, http.StatusConflict, httpx.CodeDuplicateEmail, "Email already exists")
			return
		}
		httpx.Internal(c, err)
		return
	}

	database.CreateAuditLog(ident.UserID, "employee", user.ID, "create", "Created employee "+user.Email)

	row, err := fetchEmployeeRow(user.ID)
	if err != nil {
		httpx.Internal(c, err)
		return
	}

	resp := gin.H{
		"id":         row.ID,
		"email":      row.Email,
		"role":       row.Role,
		"login_id":   row.LoginID,
		"created_at": row.CreatedAt,
		"first_name": row.FirstName,
		"last_name":  row.LastName,
		"phone":      row.Phone,
		"department": row.Department,
		"position":   row.Position,
		"hire_date":  row.HireDate,
	}
	if generated {
		resp["initial_password"] = password
	}
	c.JSON(http.StatusCreated, resp)
}

type updateEmployeeRequest struct {
	Email      *string `json:"email"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	HireDate   *string `json:"hire_date"`
}

// UpdateEmployee updates a profile. Employees may only touch their own row,
// and email, position and hire date are admin-only (silently skipped for
// non-admin callers, matching the front end's field gating).
func UpdateEmployee(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
		return
	}

	if ident.Role == models.RoleEmployee && ident.UserID != uint(id) {
		httpx.Error(c, http.StatusForbidden, httpx.CodeAccessDenied, "You can only access your own data")
		return
	}

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingFields, "Invalid request body")
		return
	}

	var hireDate *time.Time
	if req.HireDate != nil && *req.HireDate != "" {
		d, parseErr := time.Parse("2006-01-02", *req.HireDate)
		if parseErr != nil {
			httpx.Error(c, http.StatusBadRequest, httpx.CodeInvalidDate, "Hire date must be formatted YYYY-MM-DD")
			return
		}
		hireDate = &d
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if req.Email != nil && ident.Role == models.RoleAdmin {
			if err := tx.Model(&user).Update("email", *req.Email).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if req.FirstName != nil {
			updates["first_name"] = *req.FirstName
		}
		if req.LastName != nil {
			updates["last_name"] = *req.LastName
		}
		if req.Phone != nil {
			updates["phone"] = *req.Phone
		}
		if req.Department != nil {
			updates["department"] = *req.Department
		}
		if ident.Role == models.RoleAdmin {
			if req.Position != nil {
				updates["position"] = *req.Position
			}
			if req.HireDate != nil {
				updates["hire_date"] = hireDate
			}
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.EmployeeProfile{}).
			Where("user_id = ?", id).
			Updates(updates).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.Error(c, http.StatusConflict, httpx.CodeDuplicateEmail, "Email already exists")
			return
		}
		httpx.Internal(c, err)
		return
	}

	database.CreateAuditLog(ident.UserID, "employee", uint(id), "update", "Updated employee profile")

	row, err := fetchEmployeeRow(uint(id))
	if err != nil {
		httpx.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteEmployee removes the user and its profile together.
func DeleteEmployee(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpx.Error(c, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.EmployeeProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
			return
		}
		httpx.Internal(c, err)
		return
	}

	database.CreateAuditLog(ident.UserID, "employee", uint(id), "delete", "Deleted employee")

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully", "id": id})
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"dayflow/internal/database"
	"dayflow/internal/httpx"
	"dayflow/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CompanyExists reports whether the one-time setup has run.
func CompanyExists(c *gin.Context) {
	var count int64
	if err := database.DB.Model(&models.Company{}).Count(&count).Error; err != nil {
		httpx.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": count > 0})
}

// GetCompany returns the tenant record.
func GetCompany(c *gin.Context) {
	var company models.Company
	if err := database.DB.First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, http.StatusNotFound, httpx.CodeCompanyNotFound, "Company not found")
			return
		}
		httpx.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

type setupRequest struct {
	CompanyName   string `json:"company_name"`
	CompanyCode   string `json:"company_code"`
	CompanyLogo   string `json:"company_logo"`
	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

var errCompanyExists = errors.New("company already exists")

// SetupCompany is the one-time bootstrap: tenant row, admin user and admin
// profile are created in a single transaction, all-or-nothing.
func SetupCompany(c *gin.Context) {
	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingFields, "All fields are required")
		return
	}

	if req.CompanyName == "" || req.CompanyCode == "" ||
		strings.TrimSpace(req.AdminName) == "" || req.AdminEmail == "" || req.AdminPassword == "" {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingFields, "All fields are required")
		return
	}

	var company models.Company
	var admin models.User

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// authoritative read inside the transaction, never cached
		var count int64
		if err := tx.Model(&models.Company{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errCompanyExists
		}

		company = models.Company{
			Name:    req.CompanyName,
			Code:    strings.ToUpper(req.CompanyCode),
			LogoURL: req.CompanyLogo,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		admin = models.User{
			Email:                  req.AdminEmail,
			PasswordHash:           string(hash),
			Role:                   models.RoleAdmin,
			PasswordChangeRequired: false,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		// a single-token name duplicates into the last name; kept verbatim
		// from the original behavior rather than defaulting to empty
		nameParts := strings.Fields(req.AdminName)
		firstName := nameParts[0]
		lastName := strings.Join(nameParts[1:], " ")
		if lastName == "" {
			lastName = firstName
		}

		profile := models.EmployeeProfile{
			UserID:    admin.ID,
			FirstName: firstName,
			LastName:  lastName,
		}
		return tx.Create(&profile).Error
	})

	if err != nil {
		// the unique company code backstops a concurrent double-bootstrap
		if errors.Is(err, errCompanyExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.Error(c, http.StatusConflict, httpx.CodeCompanyExists, "Company already exists")
			return
		}
		httpx.Internal(c, err)
		return
	}

	database.CreateAuditLog(admin.ID, "company", company.ID, "create", "Company setup: "+company.Name)

	c.JSON(http.StatusCreated, gin.H{
		"company": company,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"role":  admin.Role,
		},
	})
}

package handlers

import (
	"errors"
	"net/http"

	"dayflow/internal/auth"
	"dayflow/internal/config"
	"dayflow/internal/database"
	"dayflow/internal/httpx"
	"dayflow/internal/middleware"
	"dayflow/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type loginUser struct {
	ID                     uint            `json:"id"`
	Email                  string          `json:"email"`
	Role                   models.UserRole `json:"role"`
	PasswordChangeRequired bool            `json:"password_change_required"`
}

// Login authenticates by email or generated login id and issues a token.
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingCreds, "Email and password are required")
			return
		}

		identifier := req.Identifier
		if identifier == "" {
			identifier = req.Email
		}
		if identifier == "" || req.Password == "" {
			httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingCreds, "Email and password are required")
			return
		}

		var user models.User
		err := database.DB.
			Where("email = ? OR login_id = ?", identifier, identifier).
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.Error(c, http.StatusUnauthorized, httpx.CodeInvalidCreds, "Invalid email or password")
				return
			}
			httpx.Internal(c, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			httpx.Error(c, http.StatusUnauthorized, httpx.CodeInvalidCreds, "Invalid email or password")
			return
		}

		token, err := auth.Issue(&user, []byte(cfg.JWTSecret), cfg.JWTTTL)
		if err != nil {
			httpx.Internal(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": loginUser{
				ID:                     user.ID,
				Email:                  user.Email,
				Role:                   user.Role,
				PasswordChangeRequired: user.PasswordChangeRequired,
			},
		})
	}
}

// Logout is a client-side token discard; tokens stay stateless and die at
// expiry, there is no server-side revocation list.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me echoes the verified identity from the token.
func Me(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    ident.UserID,
			"email": ident.Email,
			"role":  ident.Role,
		},
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword verifies the current password, stores the new hash and
// clears the password_change_required flag.
func ChangePassword(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		httpx.Error(c, http.StatusBadRequest, httpx.CodeMissingFields, "Current and new password are required")
		return
	}
	if len(req.NewPassword) < 8 {
		httpx.Error(c, http.StatusBadRequest, httpx.CodePasswordTooShort, "New password must be at least 8 characters")
		return
	}

	var user models.User
	if err := database.DB.First(&user, ident.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(c, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
			return
		}
		httpx.Internal(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httpx.Error(c, http.StatusUnauthorized, httpx.CodeInvalidCreds, "Current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httpx.Internal(c, err)
		return
	}

	err = database.DB.Model(&user).Updates(map[string]interface{}{
		"password_hash":            string(hash),
		"password_change_required": false,
	}).Error
	if err != nil {
		httpx.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

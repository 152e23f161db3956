package middleware

import (
	"errors"
	"net/http"
	"strings"

	"dayflow/internal/auth"
	"dayflow/internal/httpx"
	"dayflow/internal/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity is the verified caller attached to the request context.
type Identity struct {
	UserID uint
	Email  string
	Role   models.UserRole
}

// CurrentIdentity returns the identity set by RequireAuth.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// RequireAuth verifies the bearer token and attaches the caller identity.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingToken, "Authentication required")
			return
		}

		claims, err := auth.Verify(strings.TrimSpace(parts[1]), secret)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrTokenExpired):
			httpx.Error(c, http.StatusUnauthorized, httpx.CodeTokenExpired, "Session expired, please login again")
			return
		case errors.Is(err, auth.ErrTokenInvalid):
			httpx.Error(c, http.StatusUnauthorized, httpx.CodeInvalidToken, "Invalid token")
			return
		default:
			// unclassified fault: never leak verification internals
			httpx.Internal(c, err)
			return
		}

		c.Set(identityKey, Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		c.Next()
	}
}

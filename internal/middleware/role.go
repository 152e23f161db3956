package middleware

import (
	"net/http"

	"dayflow/internal/httpx"
	"dayflow/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireRole restricts a route to an allow-list of roles. It must run
// after RequireAuth; a missing identity is an ordering violation.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			httpx.Error(c, http.StatusUnauthorized, httpx.CodeMissingAuth, "Authentication required")
			return
		}

		if _, ok := roleSet[ident.Role]; !ok {
			httpx.Error(c, http.StatusForbidden, httpx.CodeInsufficientPerms, "Access denied")
			return
		}
		c.Next()
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dayflow/internal/auth"
	"dayflow/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("middleware-test-secret")

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(testSecret), func(c *gin.Context) {
		ident, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": ident.UserID, "email": ident.Email, "role": ident.Role})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, authHeader string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	return e["code"].(string)
}

func issueToken(t *testing.T, role models.UserRole, ttl time.Duration) string {
	t.Helper()
	tok, err := auth.Issue(&models.User{ID: 7, Email: "e@x.com", Role: role}, testSecret, ttl)
	require.NoError(t, err)
	return tok
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r := newAuthRouter()
	w, body := doRequest(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))
}

func TestRequireAuth_BadPrefix(t *testing.T) {
	r := newAuthRouter()
	w, body := doRequest(t, r, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))
}

func TestRequireAuth_Expired(t *testing.T) {
	r := newAuthRouter()
	tok := issueToken(t, models.RoleEmployee, -time.Minute)
	w, body := doRequest(t, r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, body))
}

func TestRequireAuth_Tampered(t *testing.T) {
	r := newAuthRouter()
	tok := issueToken(t, models.RoleEmployee, time.Hour)
	w, body := doRequest(t, r, "Bearer "+tok+"x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

func TestRequireAuth_Valid(t *testing.T) {
	r := newAuthRouter()
	tok := issueToken(t, models.RoleAdmin, time.Hour)
	w, body := doRequest(t, r, "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "e@x.com", body["email"])
	assert.Equal(t, "ADMIN", body["role"])
}

package auth

import (
	"testing"
	"time"

	"dayflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func testUser() *models.User {
	loginID := "ACMEJD20260001"
	return &models.User{
		ID:      42,
		Email:   "jane@acme.com",
		Role:    models.RoleAdmin,
		LoginID: &loginID,
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	tok, err := Issue(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := Verify(tok, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jane@acme.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "ACMEJD20260001", claims.LoginID)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	tok, err := Issue(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(tok, testSecret)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Issue(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = Verify(tok, []byte("other-secret"))
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	tok, err := Issue(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	// flip the last signature byte
	tampered := tok[:len(tok)-1]
	if tok[len(tok)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}

	_, err = Verify(tampered, testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
	require.NotErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Verify("not.a.jwt", testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

// an expired token must never be reported as forged, and vice versa
func TestVerify_ExpiredNotInvalid(t *testing.T) {
	t.Parallel()

	tok, err := Issue(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(tok, testSecret)
	require.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_UnknownRole(t *testing.T) {
	t.Parallel()

	u := testUser()
	u.Role = models.UserRole("SUPERUSER")
	tok, err := Issue(u, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = Verify(tok, testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

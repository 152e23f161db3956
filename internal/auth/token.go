package auth

import (
	"errors"
	"time"

	"dayflow/internal/models"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Verification outcomes. Expired and forged/malformed must stay distinct:
// the gate returns a different message for each.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the bearer token payload.
type Claims struct {
	UserID  uint            `json:"id"`
	Email   string          `json:"email"`
	Role    models.UserRole `json:"role"`
	LoginID string          `json:"login_id,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs an HS256 token for a verified user.
func Issue(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if user.LoginID != nil {
		claims.LoginID = *user.LoginID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify checks signature and expiry. It returns ErrTokenExpired for a
// well-signed token past its expiry and ErrTokenInvalid for everything else.
func Verify(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	role, ok := models.ParseRole(string(claims.Role))
	if !ok || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	claims.Role = role

	return claims, nil
}

// Package loginid generates company-scoped login identifiers of the form
// [CompanyCode][FirstInitial][LastInitial][Year][Serial], e.g. ACMEJD20260001.
package loginid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"dayflow/internal/models"

	"gorm.io/gorm"
)

var ErrNoCompany = errors.New("company not found")

// Generate produces the next login id for the given name. It must run on
// the same transaction handle as the user insert so the serial scan and the
// insert are atomic.
func Generate(db *gorm.DB, firstName, lastName string) (string, error) {
	var company models.Company
	if err := db.First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoCompany
		}
		return "", err
	}

	prefix := fmt.Sprintf("%s%s%s%d",
		company.Code,
		initial(firstName),
		initial(lastName),
		time.Now().Year(),
	)

	var last models.User
	serial := 1
	err := db.Where("login_id LIKE ?", prefix+"%").
		Order("login_id DESC").
		First(&last).Error
	switch {
	case err == nil && last.LoginID != nil:
		id := *last.LoginID
		if len(id) >= 4 {
			if n, convErr := strconv.Atoi(id[len(id)-4:]); convErr == nil {
				serial = n + 1
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return "", err
	}

	return fmt.Sprintf("%s%04d", prefix, serial), nil
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "X"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// GeneratePassword returns a random initial password for accounts created
// without one; such accounts get password_change_required set.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = 12
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordCharset[n.Int64()]
	}
	return string(out), nil
}

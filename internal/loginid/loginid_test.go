package loginid

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"dayflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Company{}, &models.User{}))
	return db
}

func TestGenerate_FirstSerial(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Company{Name: "Acme", Code: "ACME"}).Error)

	id, err := Generate(db, "Jane", "Doe")
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("ACMEJD%d0001", year), id)
}

func TestGenerate_SerialIncrements(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Company{Name: "Acme", Code: "ACME"}).Error)

	existing := fmt.Sprintf("ACMEJD%d0007", time.Now().Year())
	require.NoError(t, db.Create(&models.User{
		Email:        "prev@acme.com",
		LoginID:      &existing,
		PasswordHash: "x",
		Role:         models.RoleEmployee,
	}).Error)

	id, err := Generate(db, "John", "Davis")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ACMEJD%d0008", time.Now().Year()), id)
}

func TestGenerate_DistinctInitialsOwnSequence(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Company{Name: "Acme", Code: "ACME"}).Error)

	existing := fmt.Sprintf("ACMEJD%d0003", time.Now().Year())
	require.NoError(t, db.Create(&models.User{
		Email:        "prev@acme.com",
		LoginID:      &existing,
		PasswordHash: "x",
		Role:         models.RoleEmployee,
	}).Error)

	id, err := Generate(db, "Alice", "Brown")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ACMEAB%d0001", time.Now().Year()), id)
}

func TestGenerate_LowercaseNames(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Company{Name: "Acme", Code: "ACME"}).Error)

	id, err := Generate(db, "jane", "doe")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "ACMEJD"), "got %s", id)
}

func TestGenerate_NoCompany(t *testing.T) {
	db := newTestDB(t)
	_, err := Generate(db, "Jane", "Doe")
	require.ErrorIs(t, err, ErrNoCompany)
}

func TestGeneratePassword(t *testing.T) {
	t.Parallel()

	pw, err := GeneratePassword(12)
	require.NoError(t, err)
	assert.Len(t, pw, 12)
	for _, r := range pw {
		assert.Contains(t, passwordCharset, string(r))
	}

	other, err := GeneratePassword(12)
	require.NoError(t, err)
	assert.NotEqual(t, pw, other)
}

func TestGeneratePassword_DefaultLength(t *testing.T) {
	t.Parallel()

	pw, err := GeneratePassword(0)
	require.NoError(t, err)
	assert.Len(t, pw, 12)
}

package service

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bradleyburgess/diabeateeze/internal/database"
	"github.com/bradleyburgess/diabeateeze/internal/models"
)

// newTestDB opens a throwaway migrated SQLite database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Name:         "Test User",
		Email:        "testuser+" + uuid.NewString() + "@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user.ID
}

func createTestInsulinType(t *testing.T, db *gorm.DB, name string, isDefault bool) *models.InsulinType {
	t.Helper()

	it := models.InsulinType{
		Name:      name,
		Category:  models.InsulinCategoryRapid,
		IsDefault: isDefault,
	}
	if err := db.Create(&it).Error; err != nil {
		t.Fatalf("failed to create insulin type: %v", err)
	}
	return &it
}

package helpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"artfolio_backend/database"
	"artfolio_backend/internal/auth"
	"artfolio_backend/internal/config"
	"artfolio_backend/internal/models"
)

// NewTestDB opens an isolated in-memory database and migrates the schema.
// A single connection is enforced because each sqlite connection would
// otherwise get its own empty in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get *sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// LoadTestConfig installs a config suitable for tests without touching the
// filesystem or environment.
func LoadTestConfig() {
	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Server.Port = 0
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 1
	cfg.Quota.FreeMaxItems = 50
	cfg.Quota.FreeMaxStorageMB = 500
	cfg.Quota.ReconcileMinutes = 60
	config.AppConfig = cfg
}

// CreateUser inserts a user, hashing the password when a raw one was given.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) *models.User {
	t.Helper()

	if user.PasswordHash != "" && len(user.PasswordHash) < 50 {
		hash, err := auth.HashPassword(user.PasswordHash)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		user.PasswordHash = hash
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.SubscriptionType == "" {
		user.SubscriptionType = models.SubscriptionFree
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", user.Email, err)
	}
	return user
}

// CreateTestUser is a shorthand for a standard active user of a given role.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	suffix := fmt.Sprintf("%s_%d", role, time.Now().UnixNano())
	return CreateUser(t, db, &models.User{
		Username:     "user_" + suffix,
		Email:        fmt.Sprintf("%s@test.com", suffix),
		PasswordHash: "password123",
		Role:         role,
	})
}

// CreateItem inserts a portfolio item for the given owner. It writes the row
// directly, without the owner grant the service layer would add.
func CreateItem(t *testing.T, db *gorm.DB, ownerID string, sizeMB float64) *models.PortfolioItem {
	t.Helper()

	item := &models.PortfolioItem{
		UserID:     ownerID,
		Title:      fmt.Sprintf("item_%d", time.Now().UnixNano()),
		Category:   "digital",
		FileSizeMB: sizeMB,
		IsPublic:   true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	return item
}

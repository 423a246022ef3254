package services

import (
	"testing"
	"time"

	"matchboxd_backend/internal/auth"
	"matchboxd_backend/internal/config"
	"matchboxd_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory database with the full schema.
// TranslateError is required so the repositories see gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Match{},
		&models.Rating{},
		&models.Comment{},
		&models.Favorite{},
		&models.WatchedMatch{},
		&models.WatchlistItem{},
	)
	require.NoError(t, err)

	return db
}

func setTestConfig(t *testing.T) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "matchboxd"
	cfg.JWT.Audience = "matchboxd-web"
	cfg.JWT.TTLMinutes = 20

	prev := config.AppConfig
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string, verified bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("Passw0rd")
	require.NoError(t, err)

	user := &models.User{
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		EmailVerified: verified,
	}
	if !verified {
		token, expiry, err := auth.NewVerificationToken()
		require.NoError(t, err)
		user.VerificationToken = &token
		user.VerificationTokenExpiry = &expiry
	}

	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestMatch(t *testing.T, db *gorm.DB, home, away, status string) *models.Match {
	t.Helper()

	match := &models.Match{
		HomeTeam:  home,
		AwayTeam:  away,
		MatchDate: time.Now().Add(-48 * time.Hour),
		Status:    status,
	}
	require.NoError(t, db.Create(match).Error)
	return match
}

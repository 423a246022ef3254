package services

import (
	"testing"
	"time"

	"matchboxd_backend/internal/appErrors"
	"matchboxd_backend/internal/auth"
	"matchboxd_backend/internal/email"
	"matchboxd_backend/internal/models"
	"matchboxd_backend/internal/repositories"
	"matchboxd_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(mock *email.MockProvider) ProfileService {
	return NewProfileService(repositories.NewUserRepository(), mock, nil, "https://matchboxd.test")
}

func TestProfileService_Update(t *testing.T) {
	setTestConfig(t)

	t.Run("no changes detected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newProfileService(email.NewMockProvider())
		user := createTestUser(t, db, "alice", "alice@example.com", true)

		resp, err := svc.Update(db, user.ID, &dto.UpdateProfileRequest{
			Username: "alice",
			Email:    "alice@example.com",
		})
		require.NoError(t, err)
		assert.False(t, resp.Changed)
		assert.Empty(t, resp.Token)
	})

	t.Run("username change issues fresh token", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newProfileService(email.NewMockProvider())
		user := createTestUser(t, db, "alice", "alice@example.com", true)

		resp, err := svc.Update(db, user.ID, &dto.UpdateProfileRequest{Username: "alice2"})
		require.NoError(t, err)

		assert.True(t, resp.Changed)
		assert.Equal(t, "alice2", resp.Username)
		require.NotEmpty(t, resp.Token)

		claims, err := auth.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice2", claims.Username)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Equal(t, "alice2", stored.Username)
	})

	t.Run("username taken", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newProfileService(email.NewMockProvider())
		user := createTestUser(t, db, "alice", "alice@example.com", true)
		createTestUser(t, db, "bob", "bob@example.com", true)

		_, err := svc.Update(db, user.ID, &dto.UpdateProfileRequest{Username: "bob"})
		assert.ErrorIs(t, err, appErrors.ErrUsernameAlreadyExists)
	})

	t.Run("password confirmation mismatch applies nothing", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newProfileService(email.NewMockProvider())
		user := createTestUser(t, db, "alice", "alice@example.com", true)

		_, err := svc.Update(db, user.ID, &dto.UpdateProfileRequest{
			Username:           "alice2",
			CurrentPassword:    "Passw0rd",
			NewPassword:        "N3wPassword",
			ConfirmNewPassword: "different",
		})
		assert.ErrorIs(t, err, appErrors.ErrPasswordMismatch)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Equal(t, "alice", stored.Username)
		assert.True(t, auth.CheckPasswordHash("Passw0rd", stored.PasswordHash))
	})

	t.Run("failed change rolls back the whole update", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newProfileService(email.NewMockProvider())
		user := createTestUser(t, db, "alice", "alice@example.com", true)
		createTestUser(t, db, "bob", "bob@example.com", true)

		// Valid password change combined with a taken username: neither lands.
		_, err := svc.Update(db, user.ID, &dto.UpdateProfileRequest{
			Username:           "bob",
			CurrentPassword:    "Passw0rd",
			NewPassword:        "N3wPassword",
			ConfirmNewPassword: "N3wPassword",
		})
		assert.ErrorIs(t, err, appErrors.ErrUsernameAlreadyExists)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Equal(t, "alice", stored.Username)
		assert.True(t, auth.CheckPasswordHash("Passw0rd", stored.PasswordHash))
	})

	t.Run("wrong current password", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newProfileService(email.NewMockProvider())
		user := createTestUser(t, db, "alice", "alice@example.com", true)

		_, err := svc.Update(db, user.ID, &dto.UpdateProfileRequest{
			CurrentPassword:    "wrong",
			NewPassword:        "N3wPassword",
			ConfirmNewPassword: "N3wPassword",
		})
		assert.ErrorIs(t, err, appErrors.ErrCurrentPasswordWrong)
	})

	t.Run("weak new password rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newProfileService(email.NewMockProvider())
		user := createTestUser(t, db, "alice", "alice@example.com", true)

		_, err := svc.Update(db, user.ID, &dto.UpdateProfileRequest{
			CurrentPassword:    "Passw0rd",
			NewPassword:        "weak",
			ConfirmNewPassword: "weak",
		})
		require.Error(t, err)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.True(t, auth.CheckPasswordHash("Passw0rd", stored.PasswordHash))
	})

	t.Run("password change replaces the hash", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newProfileService(email.NewMockProvider())
		user := createTestUser(t, db, "alice", "alice@example.com", true)

		resp, err := svc.Update(db, user.ID, &dto.UpdateProfileRequest{
			CurrentPassword:    "Passw0rd",
			NewPassword:        "N3wPassword",
			ConfirmNewPassword: "N3wPassword",
		})
		require.NoError(t, err)
		assert.True(t, resp.Changed)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.False(t, auth.CheckPasswordHash("Passw0rd", stored.PasswordHash))
		assert.True(t, auth.CheckPasswordHash("N3wPassword", stored.PasswordHash))
	})

	t.Run("email change resets verification", func(t *testing.T) {
		db := setupTestDB(t)
		mock := email.NewMockProvider()
		svc := newProfileService(mock)
		user := createTestUser(t, db, "alice", "alice@example.com", true)

		resp, err := svc.Update(db, user.ID, &dto.UpdateProfileRequest{Email: "new@example.com"})
		require.NoError(t, err)
		assert.True(t, resp.Changed)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Equal(t, "new@example.com", stored.Email)
		assert.False(t, stored.EmailVerified)
		require.NotNil(t, stored.VerificationToken)
		require.NotNil(t, stored.VerificationTokenExpiry)

		assert.Eventually(t, func() bool {
			return len(mock.Sent()) == 1
		}, time.Second, 10*time.Millisecond)
		assert.Equal(t, "new@example.com", mock.Sent()[0].To)
	})

	t.Run("unknown user", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newProfileService(email.NewMockProvider())

		_, err := svc.Update(db, 999, &dto.UpdateProfileRequest{Username: "ghost"})
		assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
	})
}

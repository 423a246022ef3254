package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"matchboxd_backend/internal/appErrors"
	"matchboxd_backend/internal/auth"
	"matchboxd_backend/internal/email"
	"matchboxd_backend/internal/logger"
	"matchboxd_backend/internal/models"
	"matchboxd_backend/internal/repositories"
	"matchboxd_backend/internal/services/dto"
	"matchboxd_backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const profileImageFolder = "profiles"

// ProfileService applies credential and profile changes. The whole update is
// one transaction: every validated change commits together or none do.
type ProfileService interface {
	Update(db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) (*dto.ProfileUpdateResponse, error)
}

type ProfileServiceImpl struct {
	userRepo        repositories.UserRepository
	emailProvider   email.Provider
	store           storage.Storage
	frontendBaseURL string
}

func NewProfileService(
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	store storage.Storage,
	frontendBaseURL string,
) ProfileService {
	return &ProfileServiceImpl{
		userRepo:        userRepo,
		emailProvider:   emailProvider,
		store:           store,
		frontendBaseURL: frontendBaseURL,
	}
}

func (s *ProfileServiceImpl) Update(db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) (*dto.ProfileUpdateResponse, error) {
	// Confirmation mismatch aborts before any field is applied.
	if req.NewPassword != "" && req.NewPassword != req.ConfirmNewPassword {
		return nil, appErrors.ErrPasswordMismatch
	}

	var (
		resp              *dto.ProfileUpdateResponse
		verificationToken string
		notifyEmail       string
		notifyUsername    string
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByID(tx, userID)
		if err != nil {
			if appErrors.Is(err, repositories.ErrUserNotFound) {
				return appErrors.ErrUserNotFound
			}
			return appErrors.InternalError(err)
		}

		changed := false

		if req.Username != "" && req.Username != user.Username {
			taken, err := s.userRepo.UsernameTaken(tx, req.Username, user.ID)
			if err != nil {
				return appErrors.InternalError(err)
			}
			if taken {
				return appErrors.ErrUsernameAlreadyExists
			}
			user.Username = req.Username
			changed = true
		}

		if req.Email != "" && req.Email != user.Email {
			if msg := validateEmailFormat(req.Email); msg != "" {
				return appErrors.BadRequest(msg)
			}
			taken, err := s.userRepo.EmailTaken(tx, req.Email, user.ID)
			if err != nil {
				return appErrors.InternalError(err)
			}
			if taken {
				return appErrors.ErrEmailAlreadyExists
			}

			// An email change voids the previous verification.
			token, expiry, err := auth.NewVerificationToken()
			if err != nil {
				return appErrors.InternalError(err)
			}
			user.Email = req.Email
			user.EmailVerified = false
			user.VerificationToken = &token
			user.VerificationTokenExpiry = &expiry
			verificationToken = token
			changed = true
		}

		if req.CurrentPassword != "" && req.NewPassword != "" {
			if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
				return appErrors.ErrCurrentPasswordWrong
			}
			if err := auth.ValidatePassword(req.NewPassword); err != nil {
				return appErrors.BadRequest(err.Error())
			}
			hash, err := auth.HashPassword(req.NewPassword)
			if err != nil {
				return appErrors.InternalError(err)
			}
			user.PasswordHash = hash
			changed = true
		}

		if req.ProfileImage != nil {
			url, err := s.replaceProfileImage(user, req.ProfileImage)
			if err != nil {
				return err
			}
			user.ProfileImageURL = url
			changed = true
		}

		if !changed {
			resp = &dto.ProfileUpdateResponse{
				Message: "No changes detected",
				Changed: false,
			}
			return nil
		}

		if err := s.userRepo.Update(tx, user); err != nil {
			if appErrors.Is(err, repositories.ErrUserAlreadyExists) {
				return appErrors.Conflict("Username or email is already taken")
			}
			return appErrors.InternalError(err)
		}

		// The session claims carry username and photo, so every change
		// invalidates the current token.
		token, err := auth.GenerateToken(user)
		if err != nil {
			return appErrors.InternalError(err)
		}

		notifyEmail = user.Email
		notifyUsername = user.Username
		resp = &dto.ProfileUpdateResponse{
			Message:   "Profile updated successfully",
			Changed:   true,
			Token:     token,
			Username:  user.Username,
			AvatarURL: user.ProfileImageURL,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Outside the transaction: the send must not roll back the commit.
	if verificationToken != "" {
		s.sendVerificationEmail(notifyEmail, notifyUsername, verificationToken)
	}

	return resp, nil
}

// replaceProfileImage deletes the previous asset best-effort, then uploads
// the new one and returns its public URL.
func (s *ProfileServiceImpl) replaceProfileImage(user *models.User, header *multipart.FileHeader) (string, error) {
	if s.store == nil {
		return "", appErrors.BadRequest("Image uploads are not configured")
	}

	ctx := context.Background()

	if user.ProfileImageURL != "" {
		if oldPath := assetPathFromURL(user.ProfileImageURL); oldPath != "" {
			if err := s.store.Delete(ctx, oldPath); err != nil {
				logger.Warn("failed to delete previous profile image",
					"user_id", user.ID, "path", oldPath, "error", err)
			}
		}
	}

	file, err := header.Open()
	if err != nil {
		return "", appErrors.BadRequest("Failed to read profile image")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	path := fmt.Sprintf("%s/%s%s", profileImageFolder, uuid.NewString(), ext)
	contentType := header.Header.Get("Content-Type")

	if err := s.store.Save(ctx, path, file, contentType); err != nil {
		return "", appErrors.InternalError(err)
	}

	return s.store.URL(path), nil
}

// assetPathFromURL recovers the storage path from a previously issued public
// URL. Returns "" when the URL was not produced by this service.
func assetPathFromURL(url string) string {
	idx := strings.Index(url, profileImageFolder+"/")
	if idx < 0 {
		return ""
	}
	return url[idx:]
}

func (s *ProfileServiceImpl) sendVerificationEmail(to, username, token string) {
	if s.emailProvider == nil {
		return
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", s.frontendBaseURL, token)
	go func() {
		if err := s.emailProvider.SendVerification(to, username, link); err != nil {
			logger.Error("failed to send verification email", "to", to, "error", err)
		}
	}()
}

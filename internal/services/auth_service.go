package services

import (
	"fmt"
	"time"

	"matchboxd_backend/internal/appErrors"
	"matchboxd_backend/internal/auth"
	"matchboxd_backend/internal/email"
	"matchboxd_backend/internal/logger"
	"matchboxd_backend/internal/models"
	"matchboxd_backend/internal/repositories"
	"matchboxd_backend/internal/services/dto"

	"gorm.io/gorm"
)

// AuthService moves a user through the identity lifecycle:
// registration -> email verification -> login.
type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) error
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyEmail(db *gorm.DB, token string) error
	ResendVerification(db *gorm.DB, emailAddr string) error
}

type AuthServiceImpl struct {
	userRepo        repositories.UserRepository
	emailProvider   email.Provider
	frontendBaseURL string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	frontendBaseURL string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		emailProvider:   emailProvider,
		frontendBaseURL: frontendBaseURL,
	}
}

// Register validates the fields in order username, email, password, then
// checks uniqueness (email first). On success the user is stored unverified
// with a fresh verification token and the verification email is dispatched.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) error {
	if msg := validateUsernameFormat(req.Username); msg != "" {
		return appErrors.BadRequest(msg)
	}
	if msg := validateEmailFormat(req.Email); msg != "" {
		return appErrors.BadRequest(msg)
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return appErrors.BadRequest(err.Error())
	}

	emailTaken, err := s.userRepo.EmailTaken(db, req.Email, 0)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if emailTaken {
		return appErrors.ErrEmailAlreadyExists
	}

	usernameTaken, err := s.userRepo.UsernameTaken(db, req.Username, 0)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if usernameTaken {
		return appErrors.ErrUsernameAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return appErrors.InternalError(err)
	}

	token, expiry, err := auth.NewVerificationToken()
	if err != nil {
		return appErrors.InternalError(err)
	}

	user := &models.User{
		Username:                req.Username,
		Email:                   req.Email,
		PasswordHash:            hash,
		EmailVerified:           false,
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if appErrors.Is(err, repositories.ErrUserAlreadyExists) {
			// Lost the race against a concurrent registration.
			return appErrors.ErrEmailAlreadyExists
		}
		return appErrors.InternalError(err)
	}

	s.sendVerificationEmail(user.Email, user.Username, token)

	return nil
}

// Login authenticates by username and issues a session token. Login is
// blocked until the email is verified.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if !user.EmailVerified {
		return nil, appErrors.ErrUserNotVerified
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Message:   "Login successful",
		Token:     token,
		Username:  user.Username,
		UserPhoto: user.ProfileImageURL,
	}, nil
}

// VerifyEmail consumes a verification token. Tokens are single use: the
// token and its expiry are cleared together on success. An expired token is
// kept so the error stays distinguishable; a resend issues a fresh one.
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	if token == "" {
		return appErrors.BadRequest("Token is missing")
	}

	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrVerificationNotFound
		}
		return appErrors.InternalError(err)
	}

	if user.VerificationTokenExpiry == nil || time.Now().After(*user.VerificationTokenExpiry) {
		return appErrors.ErrTokenExpired
	}

	user.EmailVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpiry = nil

	if err := s.userRepo.Update(db, user); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// ResendVerification reissues the token, invalidating the previous one, and
// re-sends the email.
func (s *AuthServiceImpl) ResendVerification(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	if user.EmailVerified {
		return appErrors.ErrEmailAlreadyVerified
	}

	token, expiry, err := auth.NewVerificationToken()
	if err != nil {
		return appErrors.InternalError(err)
	}

	user.VerificationToken = &token
	user.VerificationTokenExpiry = &expiry

	if err := s.userRepo.Update(db, user); err != nil {
		return appErrors.InternalError(err)
	}

	s.sendVerificationEmail(user.Email, user.Username, token)

	return nil
}

// sendVerificationEmail dispatches the message asynchronously. Delivery is
// best-effort: a failure is logged and never rolls back the identity write.
func (s *AuthServiceImpl) sendVerificationEmail(to, username, token string) {
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

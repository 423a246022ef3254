package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

// AppError is the application error carried from services to transport.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// MarshalJSON hides Err and HTTPCode from API responses.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors.
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid username or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired       = New(CodeTokenExpired, "Token expired", http.StatusBadRequest)

	// Users
	ErrUserNotFound          = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists    = New(CodeEmailAlreadyExists, "Email is already registered", http.StatusConflict)
	ErrUsernameAlreadyExists = New(CodeUsernameAlreadyExists, "Username is already taken", http.StatusConflict)
	ErrUserNotVerified       = New(CodeUserNotVerified, "Email not verified", http.StatusForbidden)
	ErrEmailAlreadyVerified  = New(CodeEmailAlreadyVerified, "Email already verified", http.StatusBadRequest)
	ErrPasswordMismatch      = New(CodePasswordMismatch, "New password and confirmation do not match", http.StatusBadRequest)
	ErrCurrentPasswordWrong  = New(CodeInvalidCredentials, "Current password is incorrect", http.StatusBadRequest)
	ErrVerificationNotFound  = New(CodeRecordNotFound, "Invalid verification token", http.StatusNotFound)

	// Matches and engagement
	ErrMatchNotFound   = New(CodeMatchNotFound, "Match not found", http.StatusNotFound)
	ErrReviewNotFound  = New(CodeReviewNotFound, "No rating or comment found for this match", http.StatusNotFound)
	ErrMatchNotWatched = New(CodeRecordNotFound, "You have not marked this match as watched", http.StatusNotFound)
	ErrCommentTooEarly = New(CodePreconditionFailed, "Cannot comment before the match is finished", http.StatusBadRequest)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// ValidationError returns a validation failure with field details.
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func BadRequest(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func Conflict(message string) *AppError {
	return New(CodeAlreadyExists, message, http.StatusConflict)
}

func NotFound(message string) *AppError {
	return New(CodeRecordNotFound, message, http.StatusNotFound)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

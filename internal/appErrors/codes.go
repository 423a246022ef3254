package appErrors

// Error codes grouped by domain.
const (
	// Authentication
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodePasswordMismatch ErrorCode = "PASSWORD_MISMATCH"

	// Resources
	CodeUserNotFound   ErrorCode = "USER_NOT_FOUND"
	CodeMatchNotFound  ErrorCode = "MATCH_NOT_FOUND"
	CodeReviewNotFound ErrorCode = "REVIEW_NOT_FOUND"
	CodeRecordNotFound ErrorCode = "RECORD_NOT_FOUND"

	// Business rules
	CodeEmailAlreadyExists    ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeUsernameAlreadyExists ErrorCode = "USERNAME_ALREADY_EXISTS"
	CodeAlreadyExists         ErrorCode = "ALREADY_EXISTS"
	CodeUserNotVerified       ErrorCode = "USER_NOT_VERIFIED"
	CodeEmailAlreadyVerified  ErrorCode = "EMAIL_ALREADY_VERIFIED"
	CodePreconditionFailed    ErrorCode = "PRECONDITION_FAILED"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)

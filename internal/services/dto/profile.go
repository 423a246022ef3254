package dto

import "mime/multipart"

// UpdateProfileRequest carries the optional profile changes. Only supplied,
// changed fields are applied; the update commits atomically.
type UpdateProfileRequest struct {
	Username           string                `form:"username" validate:"omitempty,username"`
	Email              string                `form:"email" validate:"omitempty,email"`
	CurrentPassword    string                `form:"currentPassword"`
	NewPassword        string                `form:"newPassword" validate:"omitempty,password_strength"`
	ConfirmNewPassword string                `form:"confirmNewPassword"`
	ProfileImage       *multipart.FileHeader `form:"profileImage"`
}

type ProfileUpdateResponse struct {
	Message   string `json:"message"`
	Changed   bool   `json:"changed"`
	Token     string `json:"token,omitempty"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

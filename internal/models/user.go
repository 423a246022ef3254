package models

import "time"

// User is the identity record. VerificationToken and its expiry are either
// both set (verification pending) or both nil.
type User struct {
	ID              uint   `gorm:"primarykey"`
	Username        string `gorm:"uniqueIndex;size:20;not null"`
	Email           string `gorm:"uniqueIndex;not null"`
	PasswordHash    string `gorm:"not null"`
	ProfileImageURL string
	EmailVerified   bool `gorm:"default:false"`

	VerificationToken       *string `gorm:"index"`
	VerificationTokenExpiry *time.Time

	CreatedAt time.Time
}

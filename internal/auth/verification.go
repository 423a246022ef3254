package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// VerificationTokenTTL bounds how long an email verification token stays valid.
const VerificationTokenTTL = 24 * time.Hour

// NewVerificationToken issues an opaque single-use verification token with
// its expiry. 32 random bytes give 256 bits of entropy.
func NewVerificationToken() (string, time.Time, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, err
	}
	return hex.EncodeToString(buf), time.Now().Add(VerificationTokenTTL), nil
}

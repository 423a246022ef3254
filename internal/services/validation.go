package services

import (
	"net/mail"
	"regexp"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Field-level format checks for the registration path. Each returns the
// first failing rule as a message, or "" when the value is valid. Checked in
// order username, email, password before any uniqueness lookup.

func validateUsernameFormat(username string) string {
	if username == "" {
		return "Username is required"
	}
	if len(username) < 3 || len(username) > 20 {
		return "Username must be between 3-20 characters"
	}
	if !usernamePattern.MatchString(username) {
		return "Username can only contain letters, numbers, and underscores"
	}
	return ""
}

func validateEmailFormat(email string) string {
	if email == "" {
		return "Email is required"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "Please enter a valid email address (e.g., user@example.com)"
	}
	return ""
}

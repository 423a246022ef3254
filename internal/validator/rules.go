package validator

import (
	"log"
	"math"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// registerCustomRules wires the domain validation tags into the validator
// instance. Registration failure is a startup error.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("username", validateUsername)
	mustRegister("password_strength", validatePasswordStrength)
	mustRegister("rating_score", validateRatingScore)
}

// validateUsername: 3-20 characters, letters, digits and underscores only.
// Empty values pass; 'required' handles those.
func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if len(value) < 3 || len(value) > 20 {
		return false
	}
	return usernamePattern.MatchString(value)
}

// validatePasswordStrength: at least 8 characters with one uppercase letter,
// one lowercase letter and one digit.
func validatePasswordStrength(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if len(value) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// validateRatingScore: [0.5, 5.0] in half-point steps.
func validateRatingScore(fl validator.FieldLevel) bool {
	score := fl.Field().Float()
	if score < 0.5 || score > 5.0 {
		return false
	}
	doubled := score * 2
	return math.Abs(doubled-math.Round(doubled)) < 1e-9
}

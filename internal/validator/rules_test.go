package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type usernameProbe struct {
	Username string `json:"username" validate:"omitempty,username"`
}

type passwordProbe struct {
	Password string `json:"password" validate:"omitempty,password_strength"`
}

type scoreProbe struct {
	Score *float64 `json:"score" validate:"omitempty,rating_score"`
}

func TestUsernameRule(t *testing.T) {
	v := New()

	valid := []string{"bob", "alice_99", "ABC", "a2345678901234567890"}
	for _, name := range valid {
		assert.NoError(t, v.Validate(&usernameProbe{Username: name}), name)
	}

	invalid := []string{"ab", "a23456789012345678901", "has space", "dash-ed", "émile"}
	for _, name := range invalid {
		assert.Error(t, v.Validate(&usernameProbe{Username: name}), name)
	}

	// Empty passes; 'required' owns presence.
	assert.NoError(t, v.Validate(&usernameProbe{}))
}

func TestPasswordStrengthRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&passwordProbe{Password: "Passw0rd"}))
	assert.NoError(t, v.Validate(&passwordProbe{}))

	invalid := []string{"Pw1", "passw0rd", "PASSW0RD", "Password"}
	for _, pw := range invalid {
		assert.Error(t, v.Validate(&passwordProbe{Password: pw}), pw)
	}
}

func TestRatingScoreRule(t *testing.T) {
	v := New()

	score := func(f float64) *scoreProbe { return &scoreProbe{Score: &f} }

	for _, s := range []float64{0.5, 1.0, 2.5, 4.5, 5.0} {
		assert.NoError(t, v.Validate(score(s)), "score %v", s)
	}

	for _, s := range []float64{0, 0.4, 5.5, 3.7, -1} {
		assert.Error(t, v.Validate(score(s)), "score %v", s)
	}

	assert.NoError(t, v.Validate(&scoreProbe{}))
}

func TestValidationErrorUsesJSONNames(t *testing.T) {
	v := New()

	type probe struct {
		EmailAddress string `json:"email" validate:"required,email"`
	}

	err := v.Validate(&probe{})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedInput struct {
	Username string `validate:"required,min=3"`
	Email    string `validate:"omitempty,email"`
	Kind     string `validate:"omitempty,oneof=email telegram"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(validatedInput{Username: "mario", Email: "m@example.com", Kind: "email"})
	assert.NoError(t, err)
}

func TestValidateStructCollectsFailures(t *testing.T) {
	err := ValidateStruct(validatedInput{Email: "not-an-email", Kind: "fax"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username is required")
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "kind must be one of: email telegram")
}

func TestValidateStructMinLength(t *testing.T) {
	err := ValidateStruct(validatedInput{Username: "ab"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username must be at least 3 characters")
}

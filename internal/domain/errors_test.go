package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", ErrEmailTaken.Wrap(errors.New("duplicate key")))

	assert.ErrorIs(t, wrapped, ErrEmailTaken)
	assert.NotErrorIs(t, wrapped, ErrUsernameTaken)

	var de *Error
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, KindConflict, de.Kind)
}

func TestErrorMessageIncludesFields(t *testing.T) {
	err := ErrValidation.WithFields("phone", "postal_code")
	assert.Equal(t, "invalid input: phone, postal_code", err.Error())
	assert.Empty(t, ErrValidation.Fields, "sentinel must not be mutated")
}

func TestWithMessageKeepsCode(t *testing.T) {
	err := ErrNotFound.WithMessage("user %s not found", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "user u1 not found", err.Error())
}

func TestUserStatusValid(t *testing.T) {
	assert.True(t, UserStatusPro.Valid())
	assert.False(t, UserStatus(3).Valid())
	assert.Equal(t, "ADVANCED", UserStatusAdvanced.String())
}

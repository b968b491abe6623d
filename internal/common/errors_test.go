package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	inner := errors.New("sql: no rows")
	err := NewUserError("wallet not found", inner)

	assert.Contains(t, err.Error(), "wallet not found")
	assert.ErrorIs(t, err, inner)

	var userErr *UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, "wallet not found", userErr.UserMessage)
}

func TestUserError_NoInner(t *testing.T) {
	err := &UserError{UserMessage: "nothing to do"}
	assert.Equal(t, "nothing to do", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

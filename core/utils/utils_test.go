package utils

import (
	"testing"

	"agenda-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTokenFromHeader(t *testing.T) {
	token, appErr := GetTokenFromHeader("Bearer abc.def.ghi")
	require.Nil(t, appErr)
	assert.Equal(t, "abc.def.ghi", token)

	_, appErr = GetTokenFromHeader("")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrMissingAuthorizationHeader, appErr.Code)

	_, appErr = GetTokenFromHeader("Token abc")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidTokenFormat, appErr.Code)

	_, appErr = GetTokenFromHeader("Bearer ")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidTokenFormat, appErr.Code)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)
	assert.True(t, CheckPassword("s3cret-password", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("alice@x.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail(""))
}

func TestGenerateCode(t *testing.T) {
	a, err := GenerateCode("abcdefghijklmnopqrstuvwxyz", 10)
	require.NoError(t, err)
	b, err := GenerateCode("abcdefghijklmnopqrstuvwxyz", 10)
	require.NoError(t, err)
	assert.Len(t, a, 10)
	assert.Regexp(t, "^[a-z]+$", a)
	assert.NotEqual(t, a, b)
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(32)
	b := GenerateRandomString(32)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "42", ToString(id))

	_, err = ParseID("abc")
	assert.Error(t, err)
}

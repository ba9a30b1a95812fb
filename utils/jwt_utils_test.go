package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	token, err := GenerateJWT("user-123", "shopper@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "shopper@example.com", claims.Email)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	_, err := ValidateJWT("not.a.token")

	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "first-secret")
	token, err := GenerateJWT("user-123", "shopper@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET_KEY", "second-secret")
	_, err = ValidateJWT(token)

	assert.Error(t, err)
}

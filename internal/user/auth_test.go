package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("whiskers123")
	require.NoError(t, err)
	assert.NotEqual(t, "whiskers123", hash)

	assert.True(t, CheckPasswordHash("whiskers123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user-1", string(RoleCustomer), "cat@example.com")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "cat@example.com", claims.Email)
	assert.Equal(t, string(RoleCustomer), claims.Role)
}

func TestJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT("user-1", string(RoleCustomer), "cat@example.com")
	assert.Error(t, err)
}

func TestParseJWT_Tampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user-1", string(RoleAdmin), "cat@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

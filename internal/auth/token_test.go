package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	v := NewValidator("secret")
	token := sign(t, "secret", &Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestValidateToken_Rejects(t *testing.T) {
	v := NewValidator("secret")

	expired := sign(t, "secret", &Claims{
		Email:            "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})
	_, err := v.ValidateToken(expired)
	assert.Error(t, err)

	wrongKey := sign(t, "other", &Claims{Email: "user@example.com"})
	_, err = v.ValidateToken(wrongKey)
	assert.Error(t, err)

	noEmail := sign(t, "secret", &Claims{})
	_, err = v.ValidateToken(noEmail)
	assert.Error(t, err)

	_, err = NewValidator("").ValidateToken(wrongKey)
	assert.ErrorIs(t, err, ErrNoSecret)
}

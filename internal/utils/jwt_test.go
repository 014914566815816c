package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessToken_Claims(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "CUSTOMER", 15)
	require.NoError(t, err)
	assert.NotEmpty(t, at.Token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), at.Exp, 5*time.Second)

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "CUSTOMER", claims["role"])
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "CUSTOMER", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}

func TestNewRefreshToken_Unique(t *testing.T) {
	a, err := NewRefreshToken(14)
	require.NoError(t, err)
	b, err := NewRefreshToken(14)
	require.NoError(t, err)

	assert.NotEqual(t, a.Raw, b.Raw)
	assert.Len(t, a.Raw, 96) // 48 random bytes hex encoded
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), a.Exp, 5*time.Second)
}

func TestHashRefreshRaw_Deterministic(t *testing.T) {
	h1 := HashRefreshRaw("token")
	h2 := HashRefreshRaw("token")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashRefreshRaw("other"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestPasswordHashing_OutOfRangeCostFallsBack(t *testing.T) {
	hash, err := HashPassword("s3cret", 0)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))

	hash, err = HashPassword("s3cret", 99)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
}

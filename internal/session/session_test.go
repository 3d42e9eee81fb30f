package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "admin-1",
		"exp":     time.Now().Add(expiresIn).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSessionStartsUnauthenticated(t *testing.T) {
	s := New()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())
}

func TestSessionSetGetClear(t *testing.T) {
	s := New()
	s.Set("access", "refresh")

	assert.True(t, s.Authenticated())
	assert.Equal(t, "access", s.Access())
	assert.Equal(t, "refresh", s.Refresh())

	s.Clear()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())
}

func TestSetAccessKeepsRefreshToken(t *testing.T) {
	s := New()
	s.Set("old-access", "refresh")
	s.SetAccess("new-access")

	assert.Equal(t, "new-access", s.Access())
	assert.Equal(t, "refresh", s.Refresh())
}

func TestExpiresWithin(t *testing.T) {
	s := New()

	// No token at all counts as expiring.
	assert.True(t, s.ExpiresWithin(time.Minute))

	s.Set(signedToken(t, time.Hour), "refresh")
	assert.False(t, s.ExpiresWithin(2*time.Minute))
	assert.True(t, s.ExpiresWithin(2*time.Hour))

	s.Set(signedToken(t, 30*time.Second), "refresh")
	assert.True(t, s.ExpiresWithin(2*time.Minute))
}

func TestExpiresWithinUnparseableToken(t *testing.T) {
	s := New()
	s.Set("not-a-jwt", "refresh")
	assert.True(t, s.ExpiresWithin(time.Minute))
}

func TestExpiresWithinMissingExpClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "admin-1"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	s := New()
	s.Set(signed, "refresh")
	assert.True(t, s.ExpiresWithin(time.Minute))
}

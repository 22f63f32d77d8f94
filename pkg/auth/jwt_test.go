package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("user-1", "ana@example.com", "Ana Pop", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana Pop", claims.Name)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "construmat", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken("user-1", "ana@example.com", "Ana", "customer")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestTokenIDsAreUnique(t *testing.T) {
	a, err := GenerateToken("u", "e@example.com", "n", "customer")
	require.NoError(t, err)
	b, err := GenerateToken("u", "e@example.com", "n", "customer")
	require.NoError(t, err)

	ca, err := ValidateToken(a)
	require.NoError(t, err)
	cb, err := ValidateToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestMemoryDenylist(t *testing.T) {
	ctx := context.Background()
	dl := NewMemoryDenylist()

	revoked, err := dl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, dl.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = dl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryDenylistExpiry(t *testing.T) {
	ctx := context.Background()
	dl := NewMemoryDenylist()

	require.NoError(t, dl.Revoke(ctx, "jti-2", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	revoked, err := dl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryDenylistIgnoresExpiredTokens(t *testing.T) {
	ctx := context.Background()
	dl := NewMemoryDenylist()

	require.NoError(t, dl.Revoke(ctx, "jti-3", -time.Minute))

	revoked, err := dl.IsRevoked(ctx, "jti-3")
	require.NoError(t, err)
	assert.False(t, revoked)
}

package jwt

import (
	"testing"
	"time"

	"foodloss-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseIdentity(t *testing.T) {
	svc := NewJWTServiceWithSecret("test-secret", time.Hour)

	token, err := svc.GenerateTokenUser("4f0c0d5e-8d1f-4a55-9f55-3f0c7f6c1a11", "a@example.com", domain.RoleStore)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := svc.ParseIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", identity.Email)
	assert.Equal(t, "4f0c0d5e-8d1f-4a55-9f55-3f0c7f6c1a11", identity.UserID)
	assert.Equal(t, domain.RoleStore, identity.Role)
	assert.NotEmpty(t, identity.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), identity.ExpiresAt, 5*time.Second)
}

func TestEachTokenHasItsOwnID(t *testing.T) {
	svc := NewJWTServiceWithSecret("test-secret", time.Hour)

	first, err := svc.GenerateTokenUser("u1", "a@example.com", domain.RoleUser)
	require.NoError(t, err)
	second, err := svc.GenerateTokenUser("u1", "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	a, err := svc.ParseIdentity(first)
	require.NoError(t, err)
	b, err := svc.ParseIdentity(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.TokenID, b.TokenID)
}

func TestParseIdentityErrors(t *testing.T) {
	svc := NewJWTServiceWithSecret("test-secret", time.Hour)
	other := NewJWTServiceWithSecret("another-secret", time.Hour)
	expired := NewJWTServiceWithSecret("test-secret", -time.Minute)

	foreign, err := other.GenerateTokenUser("u1", "a@example.com", domain.RoleUser)
	require.NoError(t, err)
	old, err := expired.GenerateTokenUser("u1", "a@example.com", domain.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", domain.ErrTokenNotFound},
		{"garbage", "not-a-token", domain.ErrTokenInvalid},
		{"wrong secret", foreign, domain.ErrTokenInvalid},
		{"expired", old, domain.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseIdentity(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerifyEmailTokenIsNotAnAccessToken(t *testing.T) {
	svc := NewJWTServiceWithSecret("test-secret", time.Hour)

	verify, err := svc.GenerateTokenVerifyEmail("a@example.com", time.Hour)
	require.NoError(t, err)

	email, err := svc.ValidateTokenVerifyEmail(verify)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)

	_, err = svc.ParseIdentity(verify)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	access, err := svc.GenerateTokenUser("u1", "a@example.com", domain.RoleUser)
	require.NoError(t, err)
	_, err = svc.ValidateTokenVerifyEmail(access)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

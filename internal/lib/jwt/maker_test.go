package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name     string
		email    string
		nickname string
		role     string
	}{
		{
			name:     "admin user",
			email:    "admin@example.com",
			nickname: "site_admin",
			role:     RoleAdmin,
		},
		{
			name:     "regular user",
			email:    "alice@example.com",
			nickname: "alice",
			role:     RoleUser,
		},
		{
			name:     "nickname with numbers",
			email:    "bob123@example.com",
			nickname: "bob123",
			role:     RoleUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.email, tt.nickname, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.nickname, claims.Nickname)
			assert.Equal(t, tt.role, claims.Role)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, err := maker.GenerateToken("alice@example.com", "alice", RoleUser)
	require.NoError(t, err)

	expiredMaker := NewJWTMaker(secretKey, -time.Hour)
	expiredToken, err := expiredMaker.GenerateToken("alice@example.com", "alice", RoleUser)
	require.NoError(t, err)

	wrongMaker := NewJWTMaker("wrong_secret_key", 15*time.Minute)
	wrongSecretToken, err := wrongMaker.GenerateToken("alice@example.com", "alice", RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: expiredToken},
		{name: "wrong secret key", token: wrongSecretToken},
		{name: "tampered token", token: validToken + "tampered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

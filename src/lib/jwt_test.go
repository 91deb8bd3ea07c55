package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Issue("user-1", "ayse@example.com")
	require.NoError(t, err)

	claims := issuer.Resolve(token)
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ayse@example.com", claims.Email)

	id, ok := issuer.ResolveUserID(token)
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)
}

func TestTokenIssuerRejectsBadTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	other := NewTokenIssuer("another-secret", time.Hour)
	expired := NewTokenIssuer("secret", -time.Minute)

	foreign, err := other.Issue("user-1", "a@example.com")
	require.NoError(t, err)
	stale, err := expired.Issue("user-1", "a@example.com")
	require.NoError(t, err)
	valid, err := issuer.Issue("user-1", "a@example.com")
	require.NoError(t, err)

	cases := map[string]string{
		"empty":     "",
		"garbage":   "not.a.token",
		"wrong key": foreign,
		"expired":   stale,
		"tampered":  valid[:len(valid)-2] + "xx",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, issuer.Resolve(token))
		})
	}
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}

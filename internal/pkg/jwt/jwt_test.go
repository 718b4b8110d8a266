package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_VerifiesRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("ops-cli")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "ops-cli", decoded.Subject())
	assert.Equal(t, expiresAt, decoded.Expiration().Unix())

	tokenType, ok := decoded.Get("type")
	require.True(t, ok)
	assert.Equal(t, "access", tokenType)
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("ops-cli")
	assert.Error(t, err)
}

func TestDecode_RejectsTamperedToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	other := NewJWTService("another-secret", "1h")

	token, _, err := other.GenerateAccessToken("ops-cli")
	require.NoError(t, err)

	_, err = svc.JWTAuth().Decode(token)
	assert.Error(t, err)
}

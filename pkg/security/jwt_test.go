package security_test

import (
	"testing"
	"time"

	"github.com/diillson/course-platform-go/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testSecret = []byte("um-segredo-de-teste-com-mais-de-32-bytes")

func newKeyManager(t *testing.T) *security.KeyManager {
	km, err := security.NewKeyManager(testSecret, 30*time.Second, 7*24*time.Hour, zaptest.NewLogger(t))
	require.NoError(t, err)
	return km
}

func TestNewKeyManager_RejectsShortSecret(t *testing.T) {
	_, err := security.NewKeyManager([]byte("curto"), time.Minute, time.Hour, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestKeyManager_GenerateAndVerify(t *testing.T) {
	km := newKeyManager(t)

	token, err := km.GenerateToken("user-1", "$2a$10$hashdasenha", "administrator", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := km.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "$2a$10$hashdasenha", claims.Password)
	assert.Equal(t, "administrator", claims.Privilege)
}

func TestKeyManager_VerifyToken_Tampered(t *testing.T) {
	km := newKeyManager(t)

	token, err := km.GenerateToken("user-1", "hash", "student", time.Minute)
	require.NoError(t, err)

	// Corromper o último byte da assinatura
	tampered := token[:len(token)-1] + "x"

	_, err = km.VerifyToken(tampered)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestKeyManager_VerifyToken_Expired(t *testing.T) {
	km := newKeyManager(t)

	token, err := km.GenerateToken("user-1", "hash", "student", -time.Minute)
	require.NoError(t, err)

	_, err = km.VerifyToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestKeyManager_VerifyToken_WrongSecret(t *testing.T) {
	km := newKeyManager(t)

	other, err := security.NewKeyManager([]byte("outro-segredo-tambem-com-mais-de-32-bytes"), time.Minute, time.Hour, zaptest.NewLogger(t))
	require.NoError(t, err)

	token, err := other.GenerateToken("user-1", "hash", "student", time.Minute)
	require.NoError(t, err)

	_, err = km.VerifyToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestKeyManager_GenerateTokenPair(t *testing.T) {
	km := newKeyManager(t)

	pair, err := km.GenerateTokenPair("user-1", "hash", "student")
	require.NoError(t, err)

	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	access, err := km.VerifyToken(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := km.VerifyToken(pair.RefreshToken)
	require.NoError(t, err)

	// O refresh vive mais que o access
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
}

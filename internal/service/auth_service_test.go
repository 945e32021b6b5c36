package service

import (
	"testing"
	"time"

	"github.com/prepmitra/mocktest-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := NewAuthService(testConfig())

	hash, err := svc.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, svc.CheckPassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong-pass"), ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(testConfig())

	token, err := svc.GenerateAdminToken(7, "admin@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenSignedWithDifferentSecretRejected(t *testing.T) {
	issuer := NewAuthService(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})
	verifier := NewAuthService(testConfig())

	token, err := issuer.GenerateAdminToken(7, "admin@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	expired := NewAuthService(&config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Hour})

	token, err := expired.GenerateAdminToken(7, "admin@example.com")
	require.NoError(t, err)

	svc := NewAuthService(testConfig())
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewAuthService(testConfig())
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

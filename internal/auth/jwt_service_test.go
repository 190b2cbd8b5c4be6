package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	tokenID, token, err := service.GenerateToken(42, "user@example.com", "trainer", false)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "trainer", claims.Role)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, tokenID, claims.ID)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)
	other := NewJWTService("other-secret", time.Hour)

	_, token, err := service.GenerateToken(1, "user@example.com", "novice", false)
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	service := NewJWTService("test-secret", time.Nanosecond)

	_, token, err := service.GenerateToken(1, "user@example.com", "novice", false)
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_DefaultTTL(t *testing.T) {
	service := NewJWTService("test-secret", 0)
	assert.Equal(t, DefaultTokenTTL, service.TTL())
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)
	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}

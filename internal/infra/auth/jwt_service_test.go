package auth

import (
	"testing"
	"time"

	"taskhub/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()

	// Generate tokens
	accessToken, refreshToken, err := jwtService.GenerateTokens(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	accessParsed, err := jwtService.ValidateToken(accessToken, cfg.SecretKey.Access)
	assert.NoError(t, err)
	assert.True(t, accessParsed.Valid)

	accessClaims, ok := accessParsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, userID.String(), accessClaims["sub"])
	assert.Equal(t, "access", accessClaims["type"])

	// Validate refresh token
	refreshParsed, err := jwtService.ValidateToken(refreshToken, cfg.SecretKey.Refresh)
	assert.NoError(t, err)
	assert.True(t, refreshParsed.Valid)

	refreshClaims, ok := refreshParsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "refresh", refreshClaims["type"])
}

func TestJWTService_InvalidToken(t *testing.T) {
	cfg := testConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	// Test invalid token - using clearly non-JWT format
	invalidToken := "clearly-not-a-jwt-token-format"
	parsed, err := jwtService.ValidateToken(invalidToken, cfg.SecretKey.Access)
	assert.Error(t, err)
	assert.Nil(t, parsed)
}

func TestJWTService_WrongSecret(t *testing.T) {
	cfg := testConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	userID := uuid.New()
	accessToken, _, err := jwtService.GenerateTokens(userID)
	assert.NoError(t, err)

	// An access token must not validate against the refresh secret.
	parsed, err := jwtService.ValidateToken(accessToken, cfg.SecretKey.Refresh)
	assert.Error(t, err)
	if parsed != nil {
		assert.False(t, parsed.Valid)
	}
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	// Should fail to create service
	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_GetRefreshTokenDuration(t *testing.T) {
	cfg := testConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	duration := jwtService.GetRefreshTokenDuration()
	expectedDuration := time.Hour * 24 * 7 // 7 days
	assert.Equal(t, expectedDuration, duration)
}

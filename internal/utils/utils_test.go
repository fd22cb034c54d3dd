package utils

import (
	"strings"
	"testing"

	"github.com/ezmeo/wheel-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:    "test-secret",
			ExpiresIn: 3600,
		},
	}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWT("user-123", "admin", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWT("user-123", "admin", cfg)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "other-secret"
	claims, err := ValidateJWT(token, other)

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	claims, err := ValidateJWT("not-a-token", testConfig())

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestGenerateCouponSuffixLengthAndAlphabet(t *testing.T) {
	suffix, err := GenerateCouponSuffix(10)

	require.NoError(t, err)
	assert.Len(t, suffix, 10)
	for _, r := range suffix {
		assert.True(t, strings.ContainsRune(couponAlphabet, r), "unexpected character %q", r)
	}
}

func TestGenerateCouponSuffixDefaultsLength(t *testing.T) {
	suffix, err := GenerateCouponSuffix(0)

	require.NoError(t, err)
	assert.Len(t, suffix, 8)
}

func TestMaskContact(t *testing.T) {
	assert.Equal(t, "sh****om", MaskContact("shopper@example.com"))
	assert.Equal(t, "****", MaskContact("a@b"))
	assert.Equal(t, "", MaskContact(""))
}

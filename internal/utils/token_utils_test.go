package utils_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-key"

func TestGenerateJWT_RoundTrip(t *testing.T) {
	userID := uuid.NewString()

	tokenString, err := utils.GenerateJWT(userID, "OWNER", testSecret, time.Hour, "ledgerly-test")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := utils.ParseAndValidateJWT(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "ledgerly-test", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestGenerateJWT_CarriesRoleClaim(t *testing.T) {
	tokenString, err := utils.GenerateJWT(uuid.NewString(), "STAFF", testSecret, time.Hour, "ledgerly-test")
	require.NoError(t, err)

	// The role travels as a private claim.
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "STAFF", mapClaims["role"])
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	tokenString, err := utils.GenerateJWT(uuid.NewString(), "OWNER", testSecret, time.Hour, "ledgerly-test")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, "a-different-secret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestParseAndValidateJWT_ExpiredToken(t *testing.T) {
	tokenString, err := utils.GenerateJWT(uuid.NewString(), "OWNER", testSecret, -time.Minute, "ledgerly-test")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, testSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParseAndValidateJWT_Garbage(t *testing.T) {
	_, err := utils.ParseAndValidateJWT("not-a-jwt", testSecret)
	require.Error(t, err)
}

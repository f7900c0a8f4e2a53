package utils_test

import (
	"testing"

	"github.com/ledgerly/ledgerly-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifiesWithOriginal(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, utils.VerifyPassword("s3cret-password", hash))
	assert.False(t, utils.VerifyPassword("wrong-password", hash))
}

func TestVerifyPassword_RejectsMalformedHash(t *testing.T) {
	assert.False(t, utils.VerifyPassword("anything", "not-a-bcrypt-hash"))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminKeyRoundTrip(t *testing.T) {
	hash, err := HashAdminKey("open-sesame", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyAdminKey(hash, "open-sesame"))
	assert.False(t, VerifyAdminKey(hash, "open-sesame "))
	assert.False(t, VerifyAdminKey(hash, ""))
	assert.False(t, VerifyAdminKey("not-a-bcrypt-hash", "open-sesame"))
}

package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", hash)

	assert.True(t, CompareHashAndPassword(hash, "password1"))
	assert.False(t, CompareHashAndPassword(hash, "password2"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "password1"))
}

package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CompareHashAndPassword(hash, "s3cret-password"))
	assert.False(t, CompareHashAndPassword(hash, "wrong-password"))
	assert.False(t, CompareHashAndPassword("", "s3cret-password"))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-input")
	require.NoError(t, err)
	h2, err := HashPassword("same-input")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

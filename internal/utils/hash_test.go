package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString_DeterministicAndKeyed(t *testing.T) {
	a := HashString("secret", "key-1")
	b := HashString("secret", "key-1")
	c := HashString("secret", "key-2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	// hex-encoded SHA-256: fixed 64-char length regardless of input length
	assert.Len(t, a, 64)
	assert.Len(t, HashString("", "key-1"), 64)
	assert.Len(t, HashString("a very very very long password input", "key-1"), 64)
}

func TestHashToken_DiffersFromInput(t *testing.T) {
	token := "opaque-cookie-token"
	h := HashToken(token)

	assert.NotEqual(t, token, h)
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken(token))
}

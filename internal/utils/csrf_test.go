package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCSRFToken_RoundTrip(t *testing.T) {
	token, err := GenerateCSRFToken("session-1", time.Hour, "sign-key")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, ValidateCSRFToken(token, "session-1", "sign-key"))
}

func TestValidateCSRFToken_WrongSession(t *testing.T) {
	token, err := GenerateCSRFToken("session-1", time.Hour, "sign-key")
	require.NoError(t, err)

	assert.Error(t, ValidateCSRFToken(token, "session-2", "sign-key"))
}

func TestValidateCSRFToken_WrongKey(t *testing.T) {
	token, err := GenerateCSRFToken("session-1", time.Hour, "sign-key")
	require.NoError(t, err)

	assert.Error(t, ValidateCSRFToken(token, "session-1", "other-key"))
}

func TestValidateCSRFToken_Expired(t *testing.T) {
	token, err := GenerateCSRFToken("session-1", -time.Minute, "sign-key")
	require.NoError(t, err)

	assert.Error(t, ValidateCSRFToken(token, "session-1", "sign-key"))
}

func TestGenerateCSRFToken_InvalidParams(t *testing.T) {
	_, err := GenerateCSRFToken("", time.Hour, "sign-key")
	assert.Error(t, err)

	_, err = GenerateCSRFToken("session-1", 0, "sign-key")
	assert.Error(t, err)

	_, err = GenerateCSRFToken("session-1", time.Hour, "")
	assert.Error(t, err)
}

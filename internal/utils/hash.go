package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string using
// the provided hash key and returns the result as a hex-encoded string.
//
// Used to digest the configured admin password and the submitted password
// before comparison: both digests have a fixed length, so the subsequent
// constant-time compare never branches on where a mismatch occurs.
func HashString(data, hashKey string) string {
	h := hmac.New(sha256.New, []byte(hashKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// HashToken computes the plain SHA-256 digest of an opaque session token,
// hex-encoded. Only the digest is ever persisted; the raw token lives in the
// cookie alone.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

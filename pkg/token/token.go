package token

import (
	"crypto/rand"
	"encoding/base64"
)

const byteLength = 32

// New returns a URL-safe random value suitable for session identifiers and
// anti-forgery tokens.
func New() (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

const (
	DefaultTokenLength = 32 // 256 bits
)

// GenerateToken returns a URL-safe opaque token with byteLength bytes
// of entropy. Non-positive lengths use the default.
func GenerateToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		byteLength = DefaultTokenLength
	}

	bytes := make([]byte, byteLength)

	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

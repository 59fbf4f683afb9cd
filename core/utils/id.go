package utils

import (
	"crypto/rand"
	"encoding/base64"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const randomAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateCode draws length characters from alphabet. Meeting codes and
// other short shareable identifiers are minted through here so they all
// come from the same entropy source.
func GenerateCode(alphabet string, length int) (string, error) {
	return gonanoid.Generate(alphabet, length)
}

// GenerateRandomString generates a cryptographically secure random
// url-safe string, used for single-use tokens like OAuth state.
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate(randomAlphabet, length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}

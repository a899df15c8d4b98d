package utils

import (
	"crypto/rand"
)

// tokenAlphabet has exactly 64 URL-safe symbols, so a random byte masked
// to 6 bits indexes it without modulo bias.
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

const TokenLength = 16

// GenerateToken produces the opaque invitation token handed to a guest
// at creation time. It is the sole credential for viewing and editing
// that guest's own RSVP, so it comes from crypto/rand. Uniqueness is
// enforced by the store's unique key, not here.
func GenerateToken() (string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", ErrorHandler(err, "failed to generate invitation token")
	}

	token := make([]byte, TokenLength)
	for i, b := range bytes {
		token[i] = tokenAlphabet[b&63]
	}
	return string(token), nil
}

package utils

import (
	"crypto/rand"
)

// AccessCodeAlphabet drops the visually ambiguous characters (0/O and
// 1/I/L) so a code read aloud at the check-in desk cannot be mistyped.
// 32 symbols, so a random byte masked to 5 bits indexes it evenly.
const AccessCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const AccessCodeLength = 6

// GenerateAccessCode produces one candidate check-in code. The caller is
// responsible for claiming it against the store and regenerating on a
// collision; with 32^6 combinations collisions stay vanishingly rare at
// wedding-sized guest lists.
func GenerateAccessCode() (string, error) {
	bytes := make([]byte, AccessCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", ErrorHandler(err, "failed to generate access code")
	}

	code := make([]byte, AccessCodeLength)
	for i, b := range bytes {
		code[i] = AccessCodeAlphabet[b&31]
	}
	return string(code), nil
}

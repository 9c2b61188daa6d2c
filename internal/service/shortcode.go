package service

import (
	"context"
	"crypto/rand"

	"stormboard/internal/repository"
)

// Join codes exclude visually ambiguous glyphs (0/O, 1/I, L) so they stay
// easy to read off a projector and type on a phone.
const shortCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const shortCodeLength = 6

// GenerateShortCode produces a single candidate join code. It is not
// cryptographically meaningful; uniqueness is the caller's concern.
func GenerateShortCode() (string, error) {
	buf := make([]byte, shortCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, shortCodeLength)
	for i := range code {
		code[i] = shortCodeAlphabet[int(buf[i])%len(shortCodeAlphabet)]
	}
	return string(code), nil
}

// uniqueShortCode loops generate-and-check until a code collides with no
// existing session. There is no retry bound: the 31^6 space makes
// exhaustion negligible.
func uniqueShortCode(ctx context.Context, sessions repository.SessionRepo) (string, error) {
	for {
		code, err := GenerateShortCode()
		if err != nil {
			return "", err
		}
		existing, err := sessions.GetByShortCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
}

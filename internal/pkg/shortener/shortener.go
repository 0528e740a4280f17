package shortener

import (
	"crypto/rand"
	"fmt"
)

// Alphabet for slug generation (62 characters: 0-9, a-z, A-Z)
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RedirectTokenLength is the slug length of indirection tokens baked
// into dynamic symbols. 62^10 keeps tokens unguessable.
const RedirectTokenLength = 10

// GenerateSecureSlug creates a cryptographically secure random Base62 slug.
func GenerateSecureSlug(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid slug length: %d", length)
	}

	// Rejection sampling to avoid modulo bias.
	// 248 is the largest multiple of 62 below 256.
	const maxRandomByte = 248

	slug := make([]byte, length)
	buf := make([]byte, length*2)
	written := 0

	for written < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read secure random bytes: %w", err)
		}

		for _, b := range buf {
			if b >= maxRandomByte {
				continue
			}
			slug[written] = alphabet[int(b)%len(alphabet)]
			written++
			if written == length {
				break
			}
		}
	}

	return string(slug), nil
}

// NewRedirectToken allocates a fresh opaque indirection token. The
// printed symbol of a dynamic record encodes only this token, never the
// destination, so edits never require reprinting.
func NewRedirectToken() (string, error) {
	slug, err := GenerateSecureSlug(RedirectTokenLength)
	if err != nil {
		return "", err
	}
	return "r_" + slug, nil
}

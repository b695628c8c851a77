package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// sessionTokenBytes is the raw entropy per session token. 16 bytes (128 bits)
// keeps collisions out of reach for any realistic session count.
const sessionTokenBytes = 16

// NewSessionToken returns an opaque random session token (hex, 32 chars).
// Tokens carry no claims; they are only meaningful to the session registry.
func NewSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("security: token entropy: %w", err)
	}
	return hex.EncodeToString(b), nil
}

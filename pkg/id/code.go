package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewCode returns a 32-char lowercase hex string used as the public
// appointment identifier (no separators/prefixes).
func NewCode() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

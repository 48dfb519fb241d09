// Package keygen produces secrets for generated configuration.
package keygen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// KeySize is the number of random bytes in a generated key.
const KeySize = 32

// Generate returns KeySize bytes from crypto/rand encoded as lowercase hex.
func Generate() (string, error) {
	return GenerateFrom(rand.Reader)
}

// GenerateFrom reads KeySize bytes from r and hex encodes them.
func GenerateFrom(r io.Reader) (string, error) {
	buf := make([]byte, KeySize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Package cryptox holds the credential handling of the broker client.
package cryptox

import (
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
)

// HashSecret returns the hex encoded SHA-1 digest of secret. The broker
// authenticates with this digest in place of the plain password, so the
// plain text never has to be kept after the client is constructed.
func HashSecret(secret []byte) string {
	sum := sha1.Sum(secret) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// WipeByteArray overwrites b with zeros. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashSecret_KnownDigest(t *testing.T) {
	// sha1("password")
	assert.Equal(t, "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8", HashSecret([]byte("password")))
}

func TestHashSecret_DifferentInputs(t *testing.T) {
	assert.NotEqual(t, HashSecret([]byte("a")), HashSecret([]byte("b")))
	assert.Len(t, HashSecret(nil), 40)
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)

	WipeByteArray(nil)
}

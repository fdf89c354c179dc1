package model

import (
	"bytes"
	"encoding/base64"

	"github.com/icryptix/core/errors"
	"github.com/icryptix/core/internal/cryptoutil"
)

// HashSize is the fixed width of a Hash in bytes.
const HashSize = cryptoutil.HashSize

// Hash is a fixed 32-byte opaque identifier. The zero value is the "null
// hash" used as the predecessor of genesis.
type Hash [HashSize]byte

// NullHash is the all-zero Hash used as genesis's predecessor.
var NullHash = Hash{}

// HashBytes commits to data with the module's double-SHA256 scheme.
func HashBytes(data []byte) Hash {
	return Hash(cryptoutil.DoubleSHA256(data))
}

// Equals is a byte-wise comparison.
func (h Hash) Equals(other Hash) bool {
	return bytes.Equal(h[:], other[:])
}

// IsNull reports whether h is the all-zero hash.
func (h Hash) IsNull() bool {
	return h.Equals(NullHash)
}

// Bytes returns a copy of the underlying 32 bytes.
func (h Hash) Bytes() []byte {
	out := make([]byte, HashSize)
	copy(out, h[:])

	return out
}

// String renders h as standard base64, the module's canonical text form.
func (h Hash) String() string {
	return base64.StdEncoding.EncodeToString(h[:])
}

// HashFromBase64 parses the output of String.
func HashFromBase64(s string) (Hash, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Hash{}, errors.NewMalformedBlockError("invalid base64 hash %q", s, err)
	}

	return HashFromBytes(raw)
}

// HashFromBytes copies exactly HashSize bytes into a Hash.
func HashFromBytes(b []byte) (Hash, error) {
	if len(b) != HashSize {
		return Hash{}, errors.NewMalformedBlockError("hash must be %d bytes, got %d", HashSize, len(b))
	}

	var h Hash
	copy(h[:], b)

	return h, nil
}

package model

import (
	"bytes"
	"encoding/hex"

	"github.com/icryptix/core/errors"
	"github.com/icryptix/core/internal/cryptoutil"
)

// AddressSize is the fixed width of an Address in bytes.
const AddressSize = cryptoutil.AddressSize

// Address is a Hash160 of a sender's public key: 20 bytes identifying the
// recipient or sender of a Transaction.
type Address [AddressSize]byte

// AddressFromPublicKey derives the Address that owns pubKeyBytes.
func AddressFromPublicKey(pubKeyBytes []byte) Address {
	return Address(cryptoutil.Hash160(pubKeyBytes))
}

// Equals is a byte-wise comparison.
func (a Address) Equals(other Address) bool {
	return bytes.Equal(a[:], other[:])
}

// Bytes returns a copy of the underlying 20 bytes.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressSize)
	copy(out, a[:])

	return out
}

// String renders a as hex, matching the corpus convention for fixed-size
// identifiers that are not meant to be handled as binary blobs by operators.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// AddressFromHex parses the output of String.
func AddressFromHex(s string) (Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, errors.NewMalformedBlockError("invalid hex address %q", s, err)
	}

	return AddressFromBytes(raw)
}

// AddressFromBytes copies exactly AddressSize bytes into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressSize {
		return Address{}, errors.NewMalformedBlockError("address must be %d bytes, got %d", AddressSize, len(b))
	}

	var a Address
	copy(a[:], b)

	return a, nil
}

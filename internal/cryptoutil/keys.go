// Package cryptoutil wraps the secp256k1 primitives this module depends on
// for transaction signatures and address derivation, and the symmetric
// cipher KeyPair uses to lock a private key at rest.
package cryptoutil

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // address derivation follows the Bitcoin-family hash160 convention
)

// AddressSize is the fixed width of a derived Address.
const AddressSize = 20

// HashSize is the fixed width of a Hash.
const HashSize = 32

// GeneratePrivateKey returns a fresh secp256k1 private key.
func GeneratePrivateKey() (*secp256k1.PrivateKey, error) {
	return secp256k1.GeneratePrivateKey()
}

// ParsePrivateKey decodes a 32-byte scalar into a private key.
func ParsePrivateKey(b []byte) *secp256k1.PrivateKey {
	return secp256k1.PrivKeyFromBytes(b)
}

// ParsePublicKey decodes a compressed or uncompressed public key.
func ParsePublicKey(b []byte) (*secp256k1.PublicKey, error) {
	return secp256k1.ParsePubKey(b)
}

// Sign produces a deterministic ECDSA signature over digest.
func Sign(priv *secp256k1.PrivateKey, digest []byte) []byte {
	sig := ecdsa.Sign(priv, digest)
	return sig.Serialize()
}

// Verify checks sig against digest and the public key encoded in pubKeyBytes.
func Verify(pubKeyBytes []byte, digest []byte, sig []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false
	}

	parsedSig, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}

	return parsedSig.Verify(digest, pubKey)
}

// Hash160 is RIPEMD160(SHA256(data)), the standard derivation of a fixed
// 20-byte address from an arbitrary-length public key.
func Hash160(data []byte) [AddressSize]byte {
	sum := sha256.Sum256(data)

	hasher := ripemd160.New()
	_, _ = hasher.Write(sum[:])

	var out [AddressSize]byte
	copy(out[:], hasher.Sum(nil))

	return out
}

// DoubleSHA256 is the commitment primitive used for Hash values throughout
// this module (header hash, body hash, interlink hash).
func DoubleSHA256(data []byte) [HashSize]byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])

	return second
}

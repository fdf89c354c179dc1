package cryptoutil

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/icryptix/core/errors"
)

const nonceSize = 24

// Seal encrypts plaintext under a key derived from passphrase, returning
// nonce||ciphertext. Used by KeyPair.Lock to encrypt the cleartext private
// key at rest.
func Seal(passphrase []byte, plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, errors.NewProcessingError("failed to generate nonce", err)
	}

	key := deriveKey(passphrase)

	out := secretbox.Seal(nonce[:], plaintext, &nonce, &key)

	return out, nil
}

// Open decrypts a blob produced by Seal. It fails with ErrWrongKey if
// passphrase does not match or the blob has been tampered with.
func Open(passphrase []byte, sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, errors.NewWrongKeyError("sealed blob is too short")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	key := deriveKey(passphrase)

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &key)
	if !ok {
		return nil, errors.NewWrongKeyError("passphrase does not match locked key")
	}

	return plaintext, nil
}

func deriveKey(passphrase []byte) [32]byte {
	return sha256.Sum256(passphrase)
}

package model

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/icryptix/core/errors"
	"github.com/icryptix/core/internal/cryptoutil"
	"github.com/icryptix/core/wire"
)

// KeyPair holds a secp256k1 key, either as a cleartext private key
// (Unlocked) or as a passphrase-sealed blob (Locked). Not concurrency safe:
// callers serialize their own access, matching the corpus's convention for
// similar stateful, non-thread-safe wrappers.
type KeyPair struct {
	publicKey  []byte
	privateKey *secp256k1.PrivateKey

	locked         bool
	sealed         []byte
	lastPassphrase []byte
}

// NewKeyPair generates a fresh, Unlocked KeyPair.
func NewKeyPair() (*KeyPair, error) {
	priv, err := cryptoutil.GeneratePrivateKey()
	if err != nil {
		return nil, errors.NewProcessingError("failed to generate key pair", err)
	}

	return NewKeyPairFromPrivateKey(priv), nil
}

// NewKeyPairFromPrivateKey wraps an existing private key as an Unlocked
// KeyPair.
func NewKeyPairFromPrivateKey(priv *secp256k1.PrivateKey) *KeyPair {
	return &KeyPair{
		publicKey:  priv.PubKey().SerializeCompressed(),
		privateKey: priv,
	}
}

// PublicKey returns the compressed public key, available regardless of
// lock state.
func (k *KeyPair) PublicKey() []byte {
	out := make([]byte, len(k.publicKey))
	copy(out, k.publicKey)

	return out
}

// IsLocked reports the current lock state.
func (k *KeyPair) IsLocked() bool {
	return k.locked
}

// PrivateKey returns the cleartext private key, failing with ErrLockedAccess
// while Locked.
func (k *KeyPair) PrivateKey() (*secp256k1.PrivateKey, error) {
	if k.locked {
		return nil, errors.NewLockedAccessError("key pair is locked")
	}

	return k.privateKey, nil
}

// Lock encrypts the private key under passphrase and discards the
// cleartext. Passphrase is remembered (not the cleartext key) so a later
// Relock can re-seal without asking again.
func (k *KeyPair) Lock(passphrase []byte) error {
	if k.locked {
		return nil
	}

	sealed, err := cryptoutil.Seal(passphrase, k.privateKey.Serialize())
	if err != nil {
		return err
	}

	k.sealed = sealed
	k.lastPassphrase = append([]byte(nil), passphrase...)
	k.privateKey = nil
	k.locked = true

	return nil
}

// Unlock restores the cleartext private key if passphrase matches the key
// Lock was called with. On mismatch the pair stays Locked and ErrWrongKey is
// returned.
func (k *KeyPair) Unlock(passphrase []byte) error {
	if !k.locked {
		return nil
	}

	raw, err := cryptoutil.Open(passphrase, k.sealed)
	if err != nil {
		return err
	}

	k.privateKey = cryptoutil.ParsePrivateKey(raw)
	k.lastPassphrase = append([]byte(nil), passphrase...)
	k.sealed = nil
	k.locked = false

	return nil
}

// Relock re-applies the passphrase last used to Lock or Unlock this pair,
// without requiring the caller to supply it again.
func (k *KeyPair) Relock() error {
	if k.locked {
		return nil
	}

	if k.lastPassphrase == nil {
		return errors.NewLockedAccessError("key pair has never been locked; no passphrase to reapply")
	}

	return k.Lock(k.lastPassphrase)
}

// SerializedSize is the exact byte length Serialize produces.
func (k *KeyPair) SerializedSize() int {
	size := 1 + len(k.publicKey) + 1
	if k.locked {
		size += 2 + len(k.sealed)
	} else {
		size += 2 + len(k.privateKey.Serialize())
	}

	return size
}

// Serialize writes the public key, the lock flag, and either the cleartext
// private key or the sealed blob, preserving the lock state across a
// round-trip.
func (k *KeyPair) Serialize() ([]byte, error) {
	buf := wire.NewWriter(k.SerializedSize())

	buf.WriteUint8(uint8(len(k.publicKey)))
	buf.WriteBytes(k.publicKey)

	if k.locked {
		buf.WriteUint8(1)
		buf.WriteUint16(uint16(len(k.sealed)))
		buf.WriteBytes(k.sealed)
	} else {
		raw := k.privateKey.Serialize()
		buf.WriteUint8(0)
		buf.WriteUint16(uint16(len(raw)))
		buf.WriteBytes(raw)
	}

	return buf.Bytes(), nil
}

// UnserializeKeyPair reads the layout Serialize writes.
func UnserializeKeyPair(data []byte) (*KeyPair, error) {
	buf := wire.NewReader(data)

	pkLen, err := buf.ReadUint8()
	if err != nil {
		return nil, err
	}

	pubKey, err := buf.ReadBytes(int(pkLen))
	if err != nil {
		return nil, err
	}

	lockedFlag, err := buf.ReadUint8()
	if err != nil {
		return nil, err
	}

	payloadLen, err := buf.ReadUint16()
	if err != nil {
		return nil, err
	}

	payload, err := buf.ReadBytes(int(payloadLen))
	if err != nil {
		return nil, err
	}

	if lockedFlag == 1 {
		return &KeyPair{publicKey: pubKey, locked: true, sealed: payload}, nil
	}

	return &KeyPair{publicKey: pubKey, locked: false, privateKey: cryptoutil.ParsePrivateKey(payload)}, nil
}

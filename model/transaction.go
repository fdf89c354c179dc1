package model

import (
	"bytes"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/icryptix/core/errors"
	"github.com/icryptix/core/internal/cryptoutil"
	"github.com/icryptix/core/wire"
)

const maxPubKeyOrSigBytes = 255

// Transaction is the account-model record this core validates: a sender
// identified by public key, a recipient address, and a signature over the
// transaction's signed fields. There is no UTXO set; SenderAddr is derived,
// not referenced.
type Transaction struct {
	SenderPubKey  []byte
	RecipientAddr Address
	Signature     []byte
}

// NewTransaction constructs an unsigned-shape Transaction. Legality
// (signature validity, sender != recipient) is established only by
// Block.Verify.
func NewTransaction(senderPubKey []byte, recipientAddr Address, signature []byte) (*Transaction, error) {
	if len(senderPubKey) == 0 || len(senderPubKey) > maxPubKeyOrSigBytes {
		return nil, errors.NewInvalidArgumentError("sender public key of %d bytes is out of range", len(senderPubKey))
	}

	if len(signature) > maxPubKeyOrSigBytes {
		return nil, errors.NewInvalidArgumentError("signature of %d bytes exceeds capacity %d", len(signature), maxPubKeyOrSigBytes)
	}

	pk := make([]byte, len(senderPubKey))
	copy(pk, senderPubKey)

	sig := make([]byte, len(signature))
	copy(sig, signature)

	return &Transaction{SenderPubKey: pk, RecipientAddr: recipientAddr, Signature: sig}, nil
}

// SenderAddr derives the sending Address from SenderPubKey.
func (t *Transaction) SenderAddr() Address {
	return AddressFromPublicKey(t.SenderPubKey)
}

// signedDigest is the commitment a Transaction's Signature is made over:
// every field except the signature itself.
func (t *Transaction) signedDigest() Hash {
	buf := wire.NewWriter(len(t.SenderPubKey) + AddressSize)
	buf.WriteBytes(t.SenderPubKey)
	buf.WriteBytes(t.RecipientAddr[:])

	return HashBytes(buf.Bytes())
}

// VerifySignature reports whether Signature is a valid secp256k1 signature
// by SenderPubKey over this transaction's signed fields.
func (t *Transaction) VerifySignature() (bool, error) {
	digest := t.signedDigest()

	return cryptoutil.Verify(t.SenderPubKey, digest[:], t.Signature), nil
}

// Sign populates Signature from priv, producing a transaction that will
// pass VerifySignature when SenderPubKey matches priv's public key.
func (t *Transaction) Sign(priv *secp256k1.PrivateKey) {
	digest := t.signedDigest()
	t.Signature = cryptoutil.Sign(priv, digest[:])
}

// SerializedSize is the exact byte length Serialize produces.
func (t *Transaction) SerializedSize() int {
	return 1 + len(t.SenderPubKey) + AddressSize + 1 + len(t.Signature)
}

// Serialize writes sender pubkey (u8-length-prefixed), recipient address
// (20 bytes), then signature (u8-length-prefixed).
func (t *Transaction) Serialize() ([]byte, error) {
	if len(t.SenderPubKey) > maxPubKeyOrSigBytes {
		return nil, errors.NewInvalidArgumentError("sender public key of %d bytes exceeds capacity %d", len(t.SenderPubKey), maxPubKeyOrSigBytes)
	}

	if len(t.Signature) > maxPubKeyOrSigBytes {
		return nil, errors.NewInvalidArgumentError("signature of %d bytes exceeds capacity %d", len(t.Signature), maxPubKeyOrSigBytes)
	}

	buf := wire.NewWriter(t.SerializedSize())

	buf.WriteUint8(uint8(len(t.SenderPubKey)))
	buf.WriteBytes(t.SenderPubKey)
	buf.WriteBytes(t.RecipientAddr[:])
	buf.WriteUint8(uint8(len(t.Signature)))
	buf.WriteBytes(t.Signature)

	return buf.Bytes(), nil
}

// UnserializeTransaction reads the layout Serialize writes.
func UnserializeTransaction(data []byte) (*Transaction, error) {
	return readTransaction(wire.NewReader(data))
}

// readTransaction reads one Transaction from buf's current position,
// leaving buf positioned just past it. Used by BlockBody to read a
// sequence of self-delimiting transactions from a shared buffer.
func readTransaction(buf *wire.SerialBuffer) (*Transaction, error) {
	pkLen, err := buf.ReadUint8()
	if err != nil {
		return nil, err
	}

	pubKey, err := buf.ReadBytes(int(pkLen))
	if err != nil {
		return nil, err
	}

	addrRaw, err := buf.ReadBytes(AddressSize)
	if err != nil {
		return nil, err
	}

	recipient, err := AddressFromBytes(addrRaw)
	if err != nil {
		return nil, err
	}

	sigLen, err := buf.ReadUint8()
	if err != nil {
		return nil, err
	}

	signature, err := buf.ReadBytes(int(sigLen))
	if err != nil {
		return nil, err
	}

	return &Transaction{SenderPubKey: pubKey, RecipientAddr: recipient, Signature: signature}, nil
}

// Equals is a field-wise comparison.
func (t *Transaction) Equals(other *Transaction) bool {
	if t == nil || other == nil {
		return t == other
	}

	return bytes.Equal(t.SenderPubKey, other.SenderPubKey) &&
		t.RecipientAddr.Equals(other.RecipientAddr) &&
		bytes.Equal(t.Signature, other.Signature)
}

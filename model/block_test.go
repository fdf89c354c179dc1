package model

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icryptix/core/internal/cryptoutil"
	"github.com/icryptix/core/internal/ulogger"
)

// privateKeyFromSeed derives a deterministic, reproducible private key for
// tests that need stable senders across runs.
func privateKeyFromSeed(seed string) *secp256k1.PrivateKey {
	digest := sha256.Sum256([]byte(seed))
	return cryptoutil.ParsePrivateKey(digest[:])
}

func buildSignedTx(t *testing.T, seed string, recipient Address) *Transaction {
	t.Helper()

	kp := NewKeyPairFromPrivateKey(privateKeyFromSeed(seed))

	priv, err := kp.PrivateKey()
	require.NoError(t, err)

	tx, err := NewTransaction(kp.PublicKey(), recipient, nil)
	require.NoError(t, err)
	tx.Sign(priv)

	return tx
}

// buildBlock assembles a self-consistent, trivially-PoW-legal block (using
// the maximal target) around the given transactions, so tests can focus on
// the checks that are independent of proof-of-work difficulty.
func buildBlock(t *testing.T, txs []*Transaction) *Block {
	t.Helper()

	body, err := NewBlockBody(Address{1}, txs)
	require.NoError(t, err)

	bodyHash, err := body.Hash()
	require.NoError(t, err)

	interlink, err := NewBlockInterlink([]Hash{GenesisHash()})
	require.NoError(t, err)

	interlinkHash, err := interlink.Hash()
	require.NoError(t, err)

	header := NewBlockHeader(GenesisHash(), interlinkHash, bodyHash, NullHash, DefaultPolicy.MaxTargetBits, 2, genesisTimestamp, 0)

	block, err := NewBlock(header, interlink, body, DefaultPolicy)
	require.NoError(t, err)

	return block
}

func TestGenesisPassesVerify(t *testing.T) {
	ok, err := Genesis().Verify(context.Background(), ulogger.TestLogger{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenesisHashIsStable(t *testing.T) {
	a := GenesisHash()
	b := GenesisHash()
	assert.True(t, a.Equals(b))
}

func TestBlockVerifyFailsWhenBodyHashTampered(t *testing.T) {
	block := buildBlock(t, nil)

	raw, err := block.Serialize()
	require.NoError(t, err)

	// BodyHash occupies header bytes [64:96); flip one bit inside it.
	raw[64] ^= 0xff

	tampered, err := UnserializeBlock(raw, DefaultPolicy)
	require.NoError(t, err)

	ok, err := tampered.Verify(context.Background(), ulogger.TestLogger{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlockVerifyFailsWhenInterlinkHashTampered(t *testing.T) {
	block := buildBlock(t, nil)

	raw, err := block.Serialize()
	require.NoError(t, err)

	// InterlinkHash occupies header bytes [32:64); flip one bit inside it.
	raw[32] ^= 0xff

	tampered, err := UnserializeBlock(raw, DefaultPolicy)
	require.NoError(t, err)

	ok, err := tampered.Verify(context.Background(), ulogger.TestLogger{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlockVerifyRejectsDuplicateSenders(t *testing.T) {
	recipient := AddressFromPublicKey([]byte("recipient"))

	txA := buildSignedTx(t, "sender-seed-a", recipient)
	txB := buildSignedTx(t, "sender-seed-a", recipient) // same seed: same sender

	block := buildBlock(t, []*Transaction{txA, txB})

	ok, err := block.Verify(context.Background(), ulogger.TestLogger{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlockVerifyAcceptsDistinctSenders(t *testing.T) {
	recipientA := AddressFromPublicKey([]byte("recipientA"))
	recipientB := AddressFromPublicKey([]byte("recipientB"))

	txA := buildSignedTx(t, "sender-seed-a", recipientA)
	txB := buildSignedTx(t, "sender-seed-b", recipientB)

	block := buildBlock(t, []*Transaction{txA, txB})

	ok, err := block.Verify(context.Background(), ulogger.TestLogger{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMinimalChildIsSuccessorOfGenesis(t *testing.T) {
	ctx := context.Background()
	genesis := Genesis()

	childTarget := CompactToTarget(DefaultPolicy.MaxTargetBits)

	expectedInterlink, err := genesis.NextInterlink(ctx, childTarget)
	require.NoError(t, err)

	expectedInterlinkHash, err := expectedInterlink.Hash()
	require.NoError(t, err)

	childBody, err := NewBlockBody(Address{7}, nil)
	require.NoError(t, err)

	childBodyHash, err := childBody.Hash()
	require.NoError(t, err)

	genesisHash, err := genesis.Hash()
	require.NoError(t, err)

	childHeader := NewBlockHeader(
		genesisHash,
		expectedInterlinkHash,
		childBodyHash,
		NullHash,
		DefaultPolicy.MaxTargetBits,
		genesis.Header.Height+1,
		genesis.Header.Timestamp,
		0,
	)

	child, err := NewBlock(childHeader, expectedInterlink, childBody, DefaultPolicy)
	require.NoError(t, err)

	ok, err := child.IsSuccessorOf(ctx, genesis)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSuccessorOfRejectsWrongHeight(t *testing.T) {
	ctx := context.Background()
	genesis := Genesis()

	childTarget := CompactToTarget(DefaultPolicy.MaxTargetBits)
	expectedInterlink, err := genesis.NextInterlink(ctx, childTarget)
	require.NoError(t, err)

	expectedInterlinkHash, err := expectedInterlink.Hash()
	require.NoError(t, err)

	childBody, err := NewBlockBody(Address{}, nil)
	require.NoError(t, err)

	childBodyHash, err := childBody.Hash()
	require.NoError(t, err)

	genesisHash, err := genesis.Hash()
	require.NoError(t, err)

	// Height jumps by 2 instead of 1.
	badHeader := NewBlockHeader(genesisHash, expectedInterlinkHash, childBodyHash, NullHash, DefaultPolicy.MaxTargetBits, genesis.Header.Height+2, genesis.Header.Timestamp, 0)

	bad, err := NewBlock(badHeader, expectedInterlink, childBody, DefaultPolicy)
	require.NoError(t, err)

	ok, err := bad.IsSuccessorOf(ctx, genesis)
	require.NoError(t, err)
	assert.False(t, ok)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockBodyRoundTrip(t *testing.T) {
	kp1, err := NewKeyPair()
	require.NoError(t, err)

	priv1, err := kp1.PrivateKey()
	require.NoError(t, err)

	recipient := AddressFromPublicKey([]byte("someone else"))

	tx, err := NewTransaction(kp1.PublicKey(), recipient, nil)
	require.NoError(t, err)
	tx.Sign(priv1)

	body, err := NewBlockBody(Address{1, 2, 3}, []*Transaction{tx})
	require.NoError(t, err)

	raw, err := body.Serialize()
	require.NoError(t, err)
	assert.Equal(t, body.SerializedSize(), len(raw))

	got, err := UnserializeBlockBody(raw)
	require.NoError(t, err)

	assert.True(t, body.MinerAddr.Equals(got.MinerAddr))
	require.Len(t, got.Transactions, 1)
	assert.True(t, tx.Equals(got.Transactions[0]))
}

func TestBlockBodyHashIsOrderSensitive(t *testing.T) {
	txA, err := NewTransaction([]byte("pubkeyA"), AddressFromPublicKey([]byte("r1")), nil)
	require.NoError(t, err)

	txB, err := NewTransaction([]byte("pubkeyB"), AddressFromPublicKey([]byte("r2")), nil)
	require.NoError(t, err)

	miner := Address{9}

	bodyAB, err := NewBlockBody(miner, []*Transaction{txA, txB})
	require.NoError(t, err)

	bodyBA, err := NewBlockBody(miner, []*Transaction{txB, txA})
	require.NoError(t, err)

	hashAB, err := bodyAB.Hash()
	require.NoError(t, err)

	hashBA, err := bodyBA.Hash()
	require.NoError(t, err)

	assert.False(t, hashAB.Equals(hashBA))
}

func TestEmptyBlockBodyHash(t *testing.T) {
	body, err := NewBlockBody(Address{}, nil)
	require.NoError(t, err)

	_, err = body.Hash()
	require.NoError(t, err)
}

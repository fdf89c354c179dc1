package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icryptix/core/errors"
)

func TestKeyPairLockUnlockIsIdentity(t *testing.T) {
	kp, err := NewKeyPair()
	require.NoError(t, err)

	before, err := kp.PrivateKey()
	require.NoError(t, err)

	require.NoError(t, kp.Lock([]byte{1, 2, 3, 4}))
	assert.True(t, kp.IsLocked())

	_, err = kp.PrivateKey()
	require.Error(t, err)

	var coreErr *errors.Error
	require.True(t, errors.As(err, &coreErr))
	assert.Equal(t, errors.ErrLockedAccess.Code(), coreErr.Code())

	require.NoError(t, kp.Unlock([]byte{1, 2, 3, 4}))
	assert.False(t, kp.IsLocked())

	after, err := kp.PrivateKey()
	require.NoError(t, err)
	assert.Equal(t, before.Serialize(), after.Serialize())
}

func TestKeyPairWrongKeyFailsAndStaysLocked(t *testing.T) {
	kp, err := NewKeyPair()
	require.NoError(t, err)

	require.NoError(t, kp.Lock([]byte{1, 2, 3, 4}))

	err = kp.Unlock([]byte{1, 2, 3, 3})
	require.Error(t, err)
	assert.True(t, kp.IsLocked())

	var coreErr *errors.Error
	require.True(t, errors.As(err, &coreErr))
	assert.Equal(t, errors.ErrWrongKey.Code(), coreErr.Code())

	require.NoError(t, kp.Unlock([]byte{1, 2, 3, 4}))
	assert.False(t, kp.IsLocked())
}

func TestKeyPairRelockReusesLastPassphrase(t *testing.T) {
	kp, err := NewKeyPair()
	require.NoError(t, err)

	require.NoError(t, kp.Lock([]byte("hunter2")))
	require.NoError(t, kp.Unlock([]byte("hunter2")))
	require.NoError(t, kp.Relock())

	assert.True(t, kp.IsLocked())

	_, err = kp.PrivateKey()
	require.Error(t, err)
}

func TestKeyPairSerializeRoundTripPreservesLockState(t *testing.T) {
	kp, err := NewKeyPair()
	require.NoError(t, err)

	raw, err := kp.Serialize()
	require.NoError(t, err)

	got, err := UnserializeKeyPair(raw)
	require.NoError(t, err)

	assert.Equal(t, kp.PublicKey(), got.PublicKey())
	assert.False(t, got.IsLocked())

	privBefore, err := kp.PrivateKey()
	require.NoError(t, err)

	privAfter, err := got.PrivateKey()
	require.NoError(t, err)

	assert.Equal(t, privBefore.Serialize(), privAfter.Serialize())
}

func TestKeyPairSerializeRoundTripWhenLocked(t *testing.T) {
	kp, err := NewKeyPair()
	require.NoError(t, err)
	require.NoError(t, kp.Lock([]byte("passphrase")))

	raw, err := kp.Serialize()
	require.NoError(t, err)

	got, err := UnserializeKeyPair(raw)
	require.NoError(t, err)

	assert.True(t, got.IsLocked())
	assert.Equal(t, kp.PublicKey(), got.PublicKey())

	_, err = got.PrivateKey()
	require.Error(t, err)

	require.NoError(t, got.Unlock([]byte("passphrase")))
}

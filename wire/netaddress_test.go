package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddressZeroValueRoundTrip(t *testing.T) {
	addr, err := NewNetAddress(0, 0, "", 0, 0)
	require.NoError(t, err)

	raw, err := addr.Serialize()
	require.NoError(t, err)
	assert.Equal(t, 19, len(raw))
	assert.Equal(t, make([]byte, 19), raw)

	got, err := UnserializeNetAddress(raw)
	require.NoError(t, err)
	assert.True(t, addr.Equals(got))
}

func TestNetAddressSerializedSize(t *testing.T) {
	addr, err := NewNetAddress(1, 0x0102030405060708, "example.com", 8443, 42)
	require.NoError(t, err)
	assert.Equal(t, 30, addr.SerializedSize())

	raw, err := addr.Serialize()
	require.NoError(t, err)
	assert.Equal(t, 30, len(raw))

	got, err := UnserializeNetAddress(raw)
	require.NoError(t, err)
	assert.True(t, addr.Equals(got))
}

func TestNetAddressEqualsIgnoresTimestamp(t *testing.T) {
	a, err := NewNetAddress(1, 100, "peer.example", 9000, 1)
	require.NoError(t, err)

	b, err := NewNetAddress(1, 200, "peer.example", 9000, 1)
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
}

func TestNetAddressRejectsOversizedHost(t *testing.T) {
	_, err := NewNetAddress(0, 0, string(make([]byte, MaxVarLenStringBytes+1)), 0, 0)
	require.Error(t, err)
}

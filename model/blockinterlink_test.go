package model

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockInterlinkRoundTrip(t *testing.T) {
	il, err := NewBlockInterlink([]Hash{GenesisHash(), HashBytes([]byte("a")), HashBytes([]byte("b"))})
	require.NoError(t, err)

	raw, err := il.Serialize()
	require.NoError(t, err)
	assert.Equal(t, il.SerializedSize(), len(raw))

	got, err := UnserializeBlockInterlink(raw)
	require.NoError(t, err)
	assert.True(t, il.Equals(got))
}

func TestBlockInterlinkRejectsWrongGenesisSlot(t *testing.T) {
	_, err := NewBlockInterlink([]Hash{HashBytes([]byte("not genesis"))})
	require.Error(t, err)
}

func TestEmptyInterlinkIsLegal(t *testing.T) {
	il, err := NewBlockInterlink(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, len(il.Hashes))
}

// hashWithValue builds a Hash whose big-endian integer interpretation is
// exactly v, for pinning exact depth-scan behavior in interlinkUpdate.
func hashWithValue(v int64) Hash {
	var h Hash

	big.NewInt(v).FillBytes(h[:])

	return h
}

func TestInterlinkUpdateDepthAndTailIndexing(t *testing.T) {
	// At target height h=10: 2^(h-2) == 256, 2^(h-3) == 128. A hash valued
	// 200 meets 256 but not 128, so depth == 2.
	const targetHeight = 10

	hash := hashWithValue(200)

	tail := []Hash{GenesisHash(), hashWithValue(1), hashWithValue(2), hashWithValue(3), hashWithValue(4)}

	got := interlinkUpdate(hash, tail, targetHeight, targetHeight)

	require.Len(t, got, 5)
	assert.True(t, got[0].Equals(GenesisHash()))
	assert.True(t, got[1].Equals(hash))
	assert.True(t, got[2].Equals(hash))
	assert.True(t, got[3].Equals(tail[3]))
	assert.True(t, got[4].Equals(tail[4]))
}

func TestInterlinkUpdateFastPathWhenNothingChanges(t *testing.T) {
	const targetHeight = 10

	// A hash that does not even meet 2^(h-1) clears no extra depth.
	hash := hashWithValue(1 << 30)

	current, err := NewBlockInterlink([]Hash{GenesisHash(), hashWithValue(1)})
	require.NoError(t, err)

	assert.True(t, interlinkUnchanged(hash, current, targetHeight, targetHeight))
}

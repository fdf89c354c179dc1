package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEqualsAndNull(t *testing.T) {
	a := HashBytes([]byte("a"))
	b := HashBytes([]byte("a"))
	c := HashBytes([]byte("b"))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.True(t, NullHash.IsNull())
	assert.False(t, a.IsNull())
}

func TestHashBase64RoundTrip(t *testing.T) {
	h := HashBytes([]byte("round trip me"))

	got, err := HashFromBase64(h.String())
	require.NoError(t, err)
	assert.True(t, h.Equals(got))
}

func TestHashFromBytesRejectsWrongLength(t *testing.T) {
	_, err := HashFromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

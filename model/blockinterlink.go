package model

import (
	"github.com/icryptix/core/errors"
	"github.com/icryptix/core/wire"
)

// maxInterlinkLength is the largest vector length the u8 length prefix can
// represent.
const maxInterlinkLength = 255

// BlockInterlink is the ordered vector of ancestor hashes a block carries to
// enable succinct proofs of work. A non-empty interlink has GenesisHash at
// position 0. Genesis itself carries an empty interlink, and
// Block.NextInterlink's fast path hands that empty interlink on unchanged
// to a child of genesis whose hash clears no extra level at an unchanged
// target height.
type BlockInterlink struct {
	Hashes []Hash
}

// NewBlockInterlink validates length and, for a non-empty vector, that
// position 0 is the genesis hash.
func NewBlockInterlink(hashes []Hash) (*BlockInterlink, error) {
	if len(hashes) > maxInterlinkLength {
		return nil, errors.NewInvalidArgumentError("interlink of %d entries exceeds capacity %d", len(hashes), maxInterlinkLength)
	}

	if len(hashes) > 0 && !hashes[0].Equals(GenesisHash()) {
		return nil, errors.NewMalformedBlockError("interlink position 0 must be the genesis hash")
	}

	out := make([]Hash, len(hashes))
	copy(out, hashes)

	return &BlockInterlink{Hashes: out}, nil
}

// SerializedSize is 1 + 32*len(Hashes).
func (il *BlockInterlink) SerializedSize() int {
	return 1 + HashSize*len(il.Hashes)
}

// Serialize writes a u8 length followed by each hash in order.
func (il *BlockInterlink) Serialize() ([]byte, error) {
	if len(il.Hashes) > maxInterlinkLength {
		return nil, errors.NewInvalidArgumentError("interlink of %d entries exceeds capacity %d", len(il.Hashes), maxInterlinkLength)
	}

	buf := wire.NewWriter(il.SerializedSize())
	buf.WriteUint8(uint8(len(il.Hashes)))

	for _, h := range il.Hashes {
		buf.WriteBytes(h[:])
	}

	return buf.Bytes(), nil
}

// UnserializeBlockInterlink reads a u8 length followed by that many hashes.
func UnserializeBlockInterlink(data []byte) (*BlockInterlink, error) {
	buf := wire.NewReader(data)

	n, err := buf.ReadUint8()
	if err != nil {
		return nil, err
	}

	hashes := make([]Hash, 0, n)

	for i := 0; i < int(n); i++ {
		raw, err := buf.ReadBytes(HashSize)
		if err != nil {
			return nil, err
		}

		h, err := HashFromBytes(raw)
		if err != nil {
			return nil, err
		}

		hashes = append(hashes, h)
	}

	return &BlockInterlink{Hashes: hashes}, nil
}

// Hash commits to the ordered list of hashes.
func (il *BlockInterlink) Hash() (Hash, error) {
	raw, err := il.Serialize()
	if err != nil {
		return Hash{}, err
	}

	return HashBytes(raw), nil
}

// Equals is element-wise comparison.
func (il *BlockInterlink) Equals(other *BlockInterlink) bool {
	if il == nil || other == nil {
		return il == other
	}

	if len(il.Hashes) != len(other.Hashes) {
		return false
	}

	for i := range il.Hashes {
		if !il.Hashes[i].Equals(other.Hashes[i]) {
			return false
		}
	}

	return true
}

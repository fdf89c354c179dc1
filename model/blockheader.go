package model

import (
	"math/big"

	"github.com/icryptix/core/errors"
	"github.com/icryptix/core/wire"
)

// blockHeaderSize is the fixed serialized width of a BlockHeader: four
// 32-byte hashes plus four 4-byte scalars.
const blockHeaderSize = 4*HashSize + 4*4

// BlockHeader is the immutable, fixed-width identifying tuple of a Block.
type BlockHeader struct {
	PrevHash      Hash
	InterlinkHash Hash
	BodyHash      Hash
	AccountsHash  Hash
	NBits         uint32
	Height        uint32
	Timestamp     uint32
	Nonce         uint32
}

// NewBlockHeader constructs a header from its declared fields. Malformed
// shapes are impossible at this level; legality (proof of work, hash
// matches) is established only by Block.Verify.
func NewBlockHeader(prevHash, interlinkHash, bodyHash, accountsHash Hash, nBits, height, timestamp, nonce uint32) *BlockHeader {
	return &BlockHeader{
		PrevHash:      prevHash,
		InterlinkHash: interlinkHash,
		BodyHash:      bodyHash,
		AccountsHash:  accountsHash,
		NBits:         nBits,
		Height:        height,
		Timestamp:     timestamp,
		Nonce:         nonce,
	}
}

// SerializedSize is always blockHeaderSize.
func (h *BlockHeader) SerializedSize() int {
	return blockHeaderSize
}

// Serialize writes the fields in declaration order.
func (h *BlockHeader) Serialize() ([]byte, error) {
	buf := wire.NewWriter(h.SerializedSize())

	buf.WriteBytes(h.PrevHash[:])
	buf.WriteBytes(h.InterlinkHash[:])
	buf.WriteBytes(h.BodyHash[:])
	buf.WriteBytes(h.AccountsHash[:])
	buf.WriteUint32(h.NBits)
	buf.WriteUint32(h.Height)
	buf.WriteUint32(h.Timestamp)
	buf.WriteUint32(h.Nonce)

	return buf.Bytes(), nil
}

// UnserializeBlockHeader reads the fields in declaration order.
func UnserializeBlockHeader(data []byte) (*BlockHeader, error) {
	buf := wire.NewReader(data)

	prevHash, err := readHash(buf)
	if err != nil {
		return nil, err
	}

	interlinkHash, err := readHash(buf)
	if err != nil {
		return nil, err
	}

	bodyHash, err := readHash(buf)
	if err != nil {
		return nil, err
	}

	accountsHash, err := readHash(buf)
	if err != nil {
		return nil, err
	}

	nBits, err := buf.ReadUint32()
	if err != nil {
		return nil, err
	}

	height, err := buf.ReadUint32()
	if err != nil {
		return nil, err
	}

	timestamp, err := buf.ReadUint32()
	if err != nil {
		return nil, err
	}

	nonce, err := buf.ReadUint32()
	if err != nil {
		return nil, err
	}

	return &BlockHeader{
		PrevHash:      prevHash,
		InterlinkHash: interlinkHash,
		BodyHash:      bodyHash,
		AccountsHash:  accountsHash,
		NBits:         nBits,
		Height:        height,
		Timestamp:     timestamp,
		Nonce:         nonce,
	}, nil
}

func readHash(buf *wire.SerialBuffer) (Hash, error) {
	raw, err := buf.ReadBytes(HashSize)
	if err != nil {
		return Hash{}, err
	}

	return HashFromBytes(raw)
}

// Hash is the header's identifying commitment: the block hash.
func (h *BlockHeader) Hash() (Hash, error) {
	raw, err := h.Serialize()
	if err != nil {
		return Hash{}, err
	}

	return HashBytes(raw), nil
}

// Target expands NBits into its 256-bit target.
func (h *BlockHeader) Target() *big.Int {
	return CompactToTarget(h.NBits)
}

// Difficulty is MaxTarget/Target.
func (h *BlockHeader) Difficulty() *big.Float {
	return Difficulty(h.Target())
}

// TargetHeight is ceil(log2(Target())).
func (h *BlockHeader) TargetHeight() uint32 {
	return GetTargetHeight(h.Target())
}

// VerifyProofOfWork reports whether the header's own hash meets its own
// target.
func (h *BlockHeader) VerifyProofOfWork() (bool, error) {
	hash, err := h.Hash()
	if err != nil {
		return false, errors.NewProcessingError("failed to hash header", err)
	}

	return IsProofOfWork(hash, h.Target()), nil
}

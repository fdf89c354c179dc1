package model

import (
	"github.com/icryptix/core/errors"
	"github.com/icryptix/core/wire"
)

const maxTransactionsPerBlock = 1<<16 - 1

// BlockBody is the miner's claim plus the ordered transaction sequence;
// order is significant because it feeds Hash.
type BlockBody struct {
	MinerAddr    Address
	Transactions []*Transaction
}

// NewBlockBody constructs a BlockBody, rejecting a transaction count the u16
// count field cannot represent.
func NewBlockBody(minerAddr Address, transactions []*Transaction) (*BlockBody, error) {
	if len(transactions) > maxTransactionsPerBlock {
		return nil, errors.NewInvalidArgumentError("block body of %d transactions exceeds capacity %d", len(transactions), maxTransactionsPerBlock)
	}

	txs := make([]*Transaction, len(transactions))
	copy(txs, transactions)

	return &BlockBody{MinerAddr: minerAddr, Transactions: txs}, nil
}

// SerializedSize is the exact byte length Serialize produces.
func (b *BlockBody) SerializedSize() int {
	size := AddressSize + 2

	for _, tx := range b.Transactions {
		size += tx.SerializedSize()
	}

	return size
}

// Serialize writes the miner address, a u16 transaction count, then each
// transaction in declared order.
func (b *BlockBody) Serialize() ([]byte, error) {
	if len(b.Transactions) > maxTransactionsPerBlock {
		return nil, errors.NewInvalidArgumentError("block body of %d transactions exceeds capacity %d", len(b.Transactions), maxTransactionsPerBlock)
	}

	buf := wire.NewWriter(b.SerializedSize())
	buf.WriteBytes(b.MinerAddr[:])
	buf.WriteUint16(uint16(len(b.Transactions)))

	for _, tx := range b.Transactions {
		raw, err := tx.Serialize()
		if err != nil {
			return nil, err
		}

		buf.WriteBytes(raw)
	}

	return buf.Bytes(), nil
}

// UnserializeBlockBody reads the layout Serialize writes.
func UnserializeBlockBody(data []byte) (*BlockBody, error) {
	buf := wire.NewReader(data)

	addrRaw, err := buf.ReadBytes(AddressSize)
	if err != nil {
		return nil, err
	}

	minerAddr, err := AddressFromBytes(addrRaw)
	if err != nil {
		return nil, err
	}

	count, err := buf.ReadUint16()
	if err != nil {
		return nil, err
	}

	txs := make([]*Transaction, 0, count)

	for i := 0; i < int(count); i++ {
		tx, err := readTransaction(buf)
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	return &BlockBody{MinerAddr: minerAddr, Transactions: txs}, nil
}

// Hash is a binary Merkle root over the serialized transactions, following
// the subtree/root-hash construction used for committing ordered sequences:
// leaves are the double-SHA256 of each serialized transaction (the miner
// address is folded in as leaf 0), combined pairwise up to a single root. An
// empty body's hash is the commitment of the miner address alone.
func (b *BlockBody) Hash() (Hash, error) {
	leaves := make([]Hash, 0, len(b.Transactions)+1)
	leaves = append(leaves, HashBytes(b.MinerAddr[:]))

	for _, tx := range b.Transactions {
		raw, err := tx.Serialize()
		if err != nil {
			return Hash{}, err
		}

		leaves = append(leaves, HashBytes(raw))
	}

	return merkleRoot(leaves), nil
}

// merkleRoot folds leaves pairwise (duplicating the last odd leaf, the
// conventional Merkle tree rule) until a single commitment remains.
func merkleRoot(leaves []Hash) Hash {
	if len(leaves) == 0 {
		return HashBytes(nil)
	}

	level := leaves

	for len(level) > 1 {
		next := make([]Hash, 0, (len(level)+1)/2)

		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left

			if i+1 < len(level) {
				right = level[i+1]
			}

			combined := make([]byte, 0, HashSize*2)
			combined = append(combined, left[:]...)
			combined = append(combined, right[:]...)
			next = append(next, HashBytes(combined))
		}

		level = next
	}

	return level[0]
}

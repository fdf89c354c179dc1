package model

import "sync"

// genesisTimestamp and genesisMinerAddr are the literal constants baked
// into the one and only Genesis block.
const genesisTimestamp = 1_700_000_000

var genesisMinerAddr = Address{}

var (
	genesisOnce  sync.Once
	genesisBlock *Block
	genesisHash  Hash
)

// Genesis returns the process-wide genesis Block, constructing it once on
// first access (sync.Once-guarded, in the style of a package-level
// singleton bound at first use) and returning the same value thereafter.
func Genesis() *Block {
	genesisOnce.Do(initGenesis)

	return genesisBlock
}

// GenesisHash returns Genesis().Hash(), computed once.
func GenesisHash() Hash {
	genesisOnce.Do(initGenesis)

	return genesisHash
}

func initGenesis() {
	body, err := NewBlockBody(genesisMinerAddr, nil)
	if err != nil {
		panic("genesis body construction failed: " + err.Error())
	}

	bodyHash, err := body.Hash()
	if err != nil {
		panic("genesis body hash failed: " + err.Error())
	}

	interlink, err := newEmptyInterlink()
	if err != nil {
		panic("genesis interlink construction failed: " + err.Error())
	}

	interlinkHash, err := interlink.Hash()
	if err != nil {
		panic("genesis interlink hash failed: " + err.Error())
	}

	header := NewBlockHeader(NullHash, interlinkHash, bodyHash, NullHash, DefaultPolicy.MaxTargetBits, 1, genesisTimestamp, 0)

	hash, err := header.Hash()
	if err != nil {
		panic("genesis header hash failed: " + err.Error())
	}

	block, err := NewBlock(header, interlink, body, DefaultPolicy)
	if err != nil {
		panic("genesis block construction failed: " + err.Error())
	}

	genesisBlock = block
	genesisHash = hash
}

// newEmptyInterlink builds genesis's own interlink, which is empty: it is
// the one BlockInterlink that does not carry GenesisHash at position 0,
// because it belongs to genesis itself.
func newEmptyInterlink() (*BlockInterlink, error) {
	return &BlockInterlink{Hashes: nil}, nil
}

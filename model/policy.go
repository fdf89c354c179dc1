package model

import "math/big"

// Policy gathers the consensus-adjacent constants the core enforces. A real
// deployment loads these from internal/config.Settings; DefaultPolicy exists
// for tests and the cmd/nodecore demo.
type Policy struct {
	// BlockSizeMax is the hard byte ceiling on a serialized Block.
	BlockSizeMax uint64

	// MinTargetBits and MaxTargetBits are the compact nBits values of the
	// hardest and easiest targets the chain permits. Block.Verify does not
	// check a header's NBits against them; a caller choosing a target is
	// responsible for staying inside them.
	MinTargetBits uint32
	MaxTargetBits uint32
}

// DefaultPolicy mirrors the values internal/config.NewSettings falls back to
// when no override is configured.
var DefaultPolicy = Policy{
	BlockSizeMax:  2_000_000,
	MinTargetBits: 0x03000001,
	MaxTargetBits: 0xffffffff,
}

// maxTarget is the easiest legal target: the ceiling every compact-encoded
// target is measured against for difficulty.
var maxTarget = CompactToTarget(DefaultPolicy.MaxTargetBits)

// MaxTarget returns the easiest legal 256-bit target.
func MaxTarget() *big.Int {
	return new(big.Int).Set(maxTarget)
}

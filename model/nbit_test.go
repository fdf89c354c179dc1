package model

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactTargetRoundTrip(t *testing.T) {
	target := CompactToTarget(DefaultPolicy.MaxTargetBits)
	compact := TargetToCompact(target)
	roundTripped := CompactToTarget(compact)

	assert.Equal(t, 0, target.Cmp(roundTripped))
}

func TestGetTargetHeightPowerOfTwo(t *testing.T) {
	target := new(big.Int).Lsh(big.NewInt(1), 16) // 2^16
	assert.Equal(t, uint32(16), GetTargetHeight(target))
}

func TestGetTargetHeightNonPowerOfTwo(t *testing.T) {
	target := new(big.Int).SetInt64(200) // between 2^7 and 2^8
	assert.Equal(t, uint32(8), GetTargetHeight(target))
}

func TestIsProofOfWork(t *testing.T) {
	target := big.NewInt(256)

	var low Hash
	low[HashSize-1] = 10 // value 10

	var high Hash
	high[HashSize-3] = 1 // value 256*256, far above target

	assert.True(t, IsProofOfWork(low, target))
	assert.False(t, IsProofOfWork(high, target))
}

func TestDifficultyOfMaxTargetIsOne(t *testing.T) {
	d := Difficulty(MaxTarget())
	f, _ := d.Float64()
	assert.InDelta(t, 1.0, f, 0.0001)
}

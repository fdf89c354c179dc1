package model

import "math/big"

// nBits is the compact 4-byte encoding of a 256-bit target: one exponent
// byte followed by a 3-byte big-endian mantissa, in the style of the
// teacher's NBit helper (NewNBitFromSlice, NewNBitFromString, CloneBytes).
const nBitsMantissaMask = 0x00ffffff

// maxCompactBits is a sentinel nBits value standing for the absolute
// maximum 256-bit target (2^256 - 1): the compact exponent+mantissa
// encoding can only represent a target with its low bits zero-padded, which
// can never reach the true all-ones maximum, so the all-ones nBits value is
// reserved to mean exactly that.
const maxCompactBits = 0xffffffff

// CompactToTarget expands a compact nBits value into its 256-bit target.
func CompactToTarget(bits uint32) *big.Int {
	if bits == maxCompactBits {
		return maxUint256()
	}

	exponent := int(bits >> 24)
	mantissa := big.NewInt(int64(bits & nBitsMantissaMask))

	target := new(big.Int)
	switch {
	case exponent > 3:
		target.Lsh(mantissa, uint(8*(exponent-3)))
	case exponent < 3:
		target.Rsh(mantissa, uint(8*(3-exponent)))
	default:
		target.Set(mantissa)
	}

	return target
}

// TargetToCompact reduces a 256-bit target to its compact nBits encoding.
func TargetToCompact(target *big.Int) uint32 {
	if target.Sign() <= 0 {
		return 0
	}

	if target.Cmp(maxUint256()) == 0 {
		return maxCompactBits
	}

	raw := target.Bytes()
	exponent := len(raw)

	var mantissaBytes [3]byte
	switch {
	case exponent <= 3:
		copy(mantissaBytes[3-exponent:], raw)
	default:
		copy(mantissaBytes[:], raw[:3])
	}

	mantissa := uint32(mantissaBytes[0])<<16 | uint32(mantissaBytes[1])<<8 | uint32(mantissaBytes[2])

	return uint32(exponent)<<24 | mantissa
}

func maxUint256() *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
}

// GetTargetHeight is ceil(log2(target)): the number of bits needed to
// represent every value strictly below target. Smaller height means a
// harder (smaller) target.
func GetTargetHeight(target *big.Int) uint32 {
	if target.Sign() <= 0 {
		return 0
	}

	bitLen := target.BitLen()

	// target is an exact power of two iff exactly one bit is set, in which
	// case ceil(log2(target)) == bitLen-1.
	if new(big.Int).And(target, new(big.Int).Sub(target, big.NewInt(1))).Sign() == 0 {
		return uint32(bitLen - 1)
	}

	return uint32(bitLen)
}

// TargetAtHeight returns 2^height, the canonical target for a given target
// height, used by Block.NextInterlink's depth scan.
func TargetAtHeight(height uint32) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(height))
}

// IsProofOfWork reports whether hash, interpreted as a big-endian unsigned
// integer, is numerically <= target.
func IsProofOfWork(hash Hash, target *big.Int) bool {
	hashInt := new(big.Int).SetBytes(hash[:])

	return hashInt.Cmp(target) <= 0
}

// Difficulty is MaxTarget/target, following the standard compact-target
// convention: difficulty 1 is the easiest legal target.
func Difficulty(target *big.Int) *big.Float {
	if target.Sign() <= 0 {
		return big.NewFloat(0)
	}

	ratio := new(big.Rat).SetFrac(MaxTarget(), target)

	return new(big.Float).SetRat(ratio)
}

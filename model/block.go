package model

import (
	"context"
	"math/big"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/icryptix/core/errors"
	"github.com/icryptix/core/internal/metrics"
	"github.com/icryptix/core/internal/ulogger"
	"github.com/icryptix/core/wire"
)

// Block is the triple (header, interlink, body) this core validates.
// Invariants are enforced by Verify, not by NewBlock.
type Block struct {
	Header    *BlockHeader
	Interlink *BlockInterlink
	Body      *BlockBody

	policy Policy
}

// NewBlock assembles a Block. Policy governs the size ceiling Verify
// enforces; pass DefaultPolicy absent an override.
func NewBlock(header *BlockHeader, interlink *BlockInterlink, body *BlockBody, policy Policy) (*Block, error) {
	if header == nil || interlink == nil || body == nil {
		return nil, errors.NewMalformedBlockError("block requires a header, interlink, and body")
	}

	return &Block{Header: header, Interlink: interlink, Body: body, policy: policy}, nil
}

// SerializedSize is the sum of the header, interlink, and body sizes.
func (b *Block) SerializedSize() int {
	return b.Header.SerializedSize() + b.Interlink.SerializedSize() + b.Body.SerializedSize()
}

// Serialize writes header || interlink || body.
func (b *Block) Serialize() ([]byte, error) {
	buf := wire.NewWriter(b.SerializedSize())

	headerRaw, err := b.Header.Serialize()
	if err != nil {
		return nil, err
	}

	interlinkRaw, err := b.Interlink.Serialize()
	if err != nil {
		return nil, err
	}

	bodyRaw, err := b.Body.Serialize()
	if err != nil {
		return nil, err
	}

	buf.WriteBytes(headerRaw)
	buf.WriteBytes(interlinkRaw)
	buf.WriteBytes(bodyRaw)

	return buf.Bytes(), nil
}

// UnserializeBlock reads header || interlink || body, in that order, using
// each sub-record's own self-delimiting framing.
func UnserializeBlock(data []byte, policy Policy) (*Block, error) {
	if len(data) < blockHeaderSize {
		return nil, errors.NewTruncatedError("need at least %d bytes for a header, have %d", blockHeaderSize, len(data))
	}

	header, err := UnserializeBlockHeader(data[:blockHeaderSize])
	if err != nil {
		return nil, err
	}

	rest := data[blockHeaderSize:]
	if len(rest) < 1 {
		return nil, errors.NewTruncatedError("need at least 1 byte for an interlink length, have 0")
	}

	interlinkLen := 1 + HashSize*int(rest[0])
	if len(rest) < interlinkLen {
		return nil, errors.NewTruncatedError("need %d bytes for the interlink, have %d", interlinkLen, len(rest))
	}

	interlink, err := UnserializeBlockInterlink(rest[:interlinkLen])
	if err != nil {
		return nil, err
	}

	body, err := UnserializeBlockBody(rest[interlinkLen:])
	if err != nil {
		return nil, err
	}

	return NewBlock(header, interlink, body, policy)
}

// Hash delegates to the header: the header commits to both the interlink
// and the body, so it alone identifies the block.
func (b *Block) Hash() (Hash, error) {
	return b.Header.Hash()
}

// Verify runs the seven ordered checks, failing closed and stopping at the
// first violation. It returns (false, nil) for a rule violation and a
// non-nil error only for a genuine processing fault (a hashing or
// serialization failure).
func (b *Block) Verify(ctx context.Context, logger ulogger.Logger) (bool, error) {
	timer := metrics.NewTimer(metrics.BlockVerify)
	defer timer.ObserveDuration()

	if ok, reason, err := b.checkSize(); err != nil {
		return false, err
	} else if !ok {
		logger.Warnf("block verify failed: %s", reason)
		metrics.BlockVerifyFailures.Inc()

		return false, nil
	}

	if ok, reason := b.checkUniqueSenders(); !ok {
		logger.Warnf("block verify failed: %s", reason)
		metrics.BlockVerifyFailures.Inc()

		return false, nil
	}

	if ok, reason := b.checkRecipientsDiffer(); !ok {
		logger.Warnf("block verify failed: %s", reason)
		metrics.BlockVerifyFailures.Inc()

		return false, nil
	}

	if ok, err := b.Header.VerifyProofOfWork(); err != nil {
		return false, err
	} else if !ok {
		logger.Warnf("block verify failed: proof of work does not meet target")
		metrics.BlockVerifyFailures.Inc()

		return false, nil
	}

	bodyHash, err := b.Body.Hash()
	if err != nil {
		return false, err
	}

	if !b.Header.BodyHash.Equals(bodyHash) {
		logger.Warnf("block verify failed: header body hash does not match body")
		metrics.BlockVerifyFailures.Inc()

		return false, nil
	}

	interlinkHash, err := b.Interlink.Hash()
	if err != nil {
		return false, err
	}

	if !b.Header.InterlinkHash.Equals(interlinkHash) {
		logger.Warnf("block verify failed: header interlink hash does not match interlink")
		metrics.BlockVerifyFailures.Inc()

		return false, nil
	}

	if ok, reason, err := b.checkSignatures(ctx); err != nil {
		return false, err
	} else if !ok {
		logger.Warnf("block verify failed: %s", reason)
		metrics.BlockVerifyFailures.Inc()

		return false, nil
	}

	return true, nil
}

func (b *Block) checkSize() (bool, string, error) {
	if uint64(b.SerializedSize()) > b.policy.BlockSizeMax {
		return false, "serialized size exceeds policy limit", nil
	}

	return true, "", nil
}

// checkUniqueSenders enforces at most one transaction per sender per block.
func (b *Block) checkUniqueSenders() (bool, string) {
	seen := make(map[string]struct{}, len(b.Body.Transactions))

	for i, tx := range b.Body.Transactions {
		key := string(tx.SenderPubKey)
		if _, dup := seen[key]; dup {
			return false, "duplicate sender in transaction " + strconv.Itoa(i)
		}

		seen[key] = struct{}{}
	}

	return true, ""
}

// checkRecipientsDiffer rejects a transaction that pays its own sender.
func (b *Block) checkRecipientsDiffer() (bool, string) {
	for i, tx := range b.Body.Transactions {
		if tx.RecipientAddr.Equals(tx.SenderAddr()) {
			return false, "transaction " + strconv.Itoa(i) + " pays its own sender"
		}
	}

	return true, ""
}

// checkSignatures fans signature verification out across an errgroup
// (bounded by GOMAXPROCS via SetLimit), then reports the
// lowest-index failure so the result is deterministic regardless of
// completion order.
func (b *Block) checkSignatures(ctx context.Context) (bool, string, error) {
	n := len(b.Body.Transactions)
	if n == 0 {
		return true, "", nil
	}

	results := make([]bool, n)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, tx := range b.Body.Transactions {
		i, tx := i, tx

		g.Go(func() error {
			ok, err := tx.VerifySignature()
			if err != nil {
				return err
			}

			results[i] = ok

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return false, "", errors.NewProcessingError("signature verification failed", err)
	}

	for i, ok := range results {
		if !ok {
			return false, "transaction " + strconv.Itoa(i) + " has an invalid signature", nil
		}
	}

	return true, "", nil
}

// IsSuccessorOf reports whether b legally extends prev.
func (b *Block) IsSuccessorOf(ctx context.Context, prev *Block) (bool, error) {
	timer := metrics.NewTimer(metrics.BlockIsSuccessorOf)
	defer timer.ObserveDuration()

	if b.Header.Height != prev.Header.Height+1 {
		return false, nil
	}

	if b.Header.Timestamp < prev.Header.Timestamp {
		return false, nil
	}

	prevHash, err := prev.Hash()
	if err != nil {
		return false, err
	}

	if !b.Header.PrevHash.Equals(prevHash) {
		return false, nil
	}

	expectedInterlink, err := prev.NextInterlink(ctx, b.Header.Target())
	if err != nil {
		return false, err
	}

	expectedInterlinkHash, err := expectedInterlink.Hash()
	if err != nil {
		return false, err
	}

	return b.Header.InterlinkHash.Equals(expectedInterlinkHash), nil
}

// NextInterlink is the difficulty-aware InterlinkUpdate: given the target a
// child will mine against, compute the interlink that child must carry.
func (b *Block) NextInterlink(ctx context.Context, nextTarget *big.Int) (*BlockInterlink, error) {
	timer := metrics.NewTimer(metrics.BlockNextInterlink)
	defer timer.ObserveDuration()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	hash, err := b.Hash()
	if err != nil {
		return nil, err
	}

	targetHeight := GetTargetHeight(nextTarget)
	currentHeight := b.Header.TargetHeight()

	if interlinkUnchanged(hash, b.Interlink, currentHeight, targetHeight) {
		return b.Interlink, nil
	}

	return NewBlockInterlink(interlinkUpdate(hash, b.Interlink.Hashes, currentHeight, targetHeight))
}

// interlinkDepth is the largest d >= 0 such that hash meets targets
// 2^(targetHeight-1) down to 2^(targetHeight-d).
func interlinkDepth(hash Hash, targetHeight uint32) uint32 {
	depth := uint32(0)

	for i := uint32(1); i <= targetHeight; i++ {
		level := targetHeight - i
		if !IsProofOfWork(hash, TargetAtHeight(level)) {
			break
		}

		depth = i
	}

	return depth
}

// interlinkUnchanged implements the InterlinkUpdate fast path: no deeper
// level cleared and the target height hasn't moved.
func interlinkUnchanged(hash Hash, current *BlockInterlink, currentHeight, targetHeight uint32) bool {
	return interlinkDepth(hash, targetHeight) == 0 && currentHeight == targetHeight
}

// interlinkUpdate is the pure InterlinkUpdate arithmetic: genesis, then hash
// repeated depth times, then the tail of the current vector starting at
// depth+offset+1 where offset = currentHeight-targetHeight.
func interlinkUpdate(hash Hash, current []Hash, currentHeight, targetHeight uint32) []Hash {
	depth := interlinkDepth(hash, targetHeight)

	newHashes := make([]Hash, 0, 1+int(depth))
	newHashes = append(newHashes, GenesisHash())

	for i := uint32(0); i < depth; i++ {
		newHashes = append(newHashes, hash)
	}

	offset := int(currentHeight) - int(targetHeight)
	tailStart := int(depth) + offset + 1

	if tailStart < 0 {
		tailStart = 0
	}

	if tailStart < len(current) {
		newHashes = append(newHashes, current[tailStart:]...)
	}

	return newHashes
}


package ledger

import (
	"fmt"
	"io"
	"log/slog"
)

// Blockchain is an append-only sequence of blocks. It is not safe for
// concurrent use.
type Blockchain struct {
	blocks []Block
	digest Digest
	logger *slog.Logger
}

// NewBlockchain creates a chain holding only the genesis block, which has no
// link, sequence 1 and the given value.
func NewBlockchain(genesisValue string, opts ...option) *Blockchain {
	bc := Blockchain{
		digest: SHA256,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		bc = opt(bc)
	}

	bc.blocks = []Block{{
		link:     nil,
		sequence: 1,
		value:    genesisValue,
		digest:   bc.digest,
	}}
	return &bc
}

// Append links a new block carrying value to the current tail and returns it.
func (bc *Blockchain) Append(value string) Block {
	prevHash := bc.blocks[len(bc.blocks)-1].Hash()

	newBlock := Block{
		link:     &prevHash,
		sequence: uint64(len(bc.blocks)) + 1,
		value:    value,
		digest:   bc.digest,
	}
	bc.blocks = append(bc.blocks, newBlock)

	return newBlock
}

// Len returns the number of blocks, genesis included.
func (bc *Blockchain) Len() int {
	return len(bc.blocks)
}

// Digest returns the hash function shared by all blocks of the chain.
func (bc *Blockchain) Digest() Digest {
	return bc.digest
}

// GetLatest returns the most recently appended block.
func (bc *Blockchain) GetLatest() Block {
	return bc.blocks[len(bc.blocks)-1]
}

// GetByIndex returns the block at position index, the genesis block being 0.
func (bc *Blockchain) GetByIndex(index int) (Block, error) {
	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("block %d of %d: %w", index, len(bc.blocks), ErrIndexOutOfRange)
	}
	return bc.blocks[index], nil
}

// Blocks returns a copy of the chain in order.
func (bc *Blockchain) Blocks() []Block {
	blocks := make([]Block, len(bc.blocks))
	copy(blocks, bc.blocks)
	return blocks
}

// Verify checks every stored link against the recomputed hash of the
// preceding block and returns a *TamperedLinkError for the first mismatch.
// Blocks without a link are accepted at any position and restart the check
// from their own hash.
func (bc *Blockchain) Verify() error {
	_, err := foldBlocks(bc.blocks, nil, bc.verifyStep)
	if err != nil {
		bc.logger.Warn("chain verification failed", "error", err)
		return err
	}
	bc.logger.Debug("chain verified", "length", len(bc.blocks))
	return nil
}

// verifyStep checks one block against the expected previous hash and yields
// the expectation for the next block.
func (bc *Blockchain) verifyStep(expected *string, index int, block Block) (*string, error) {
	hash := block.Hash()
	bc.logger.Debug(fmt.Sprintf("Block number %d", index), "hash", hash, "block", block.String())

	if link, ok := block.Link(); ok && (expected == nil || link != *expected) {
		err := &TamperedLinkError{Position: index, Link: link}
		if expected != nil {
			err.Expected = *expected
		}
		return nil, err
	}
	return &hash, nil
}

// foldBlocks threads acc through step for each block in order and stops at
// the first error.
func foldBlocks[A any](blocks []Block, acc A, step func(A, int, Block) (A, error)) (A, error) {
	for i, block := range blocks {
		next, err := step(acc, i, block)
		if err != nil {
			return acc, err
		}
		acc = next
	}
	return acc, nil
}

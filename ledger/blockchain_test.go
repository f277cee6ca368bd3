package ledger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// buildChain creates the chain used by most tests: a genesis block followed
// by the given values.
func buildChain(t *testing.T, values ...string) *Blockchain {
	t.Helper()
	bc := NewBlockchain("genesis block")
	for _, v := range values {
		bc.Append(v)
	}
	if bc.Len() != len(values)+1 {
		t.Fatalf("expected %d blocks, got %d", len(values)+1, bc.Len())
	}
	return bc
}

// expectTamperedAt fails the test unless err is a TamperedLinkError at position.
func expectTamperedAt(t *testing.T, err error, position int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected tampered link at block %d, got nil", position)
	}
	if !errors.Is(err, ErrTamperedLink) {
		t.Fatalf("expected ErrTamperedLink, got %v", err)
	}
	var tampered *TamperedLinkError
	if !errors.As(err, &tampered) {
		t.Fatalf("expected *TamperedLinkError, got %T", err)
	}
	if tampered.Position != position {
		t.Fatalf("expected failure at block %d, got %d", position, tampered.Position)
	}
}

// TestNewBlockchainGenesis verifies the genesis block has no link, sequence 1
// and the caller's value.
func TestNewBlockchainGenesis(t *testing.T) {
	bc := NewBlockchain("genesis block")

	if bc.Len() != 1 {
		t.Fatalf("expected 1 block (genesis), got %d", bc.Len())
	}
	genesis := bc.GetLatest()
	if link, ok := genesis.Link(); ok {
		t.Fatalf("genesis should have no link, got %q", link)
	}
	if genesis.Sequence() != 1 {
		t.Fatalf("genesis sequence should be 1, got %d", genesis.Sequence())
	}
	if genesis.Value() != "genesis block" {
		t.Fatalf("genesis value should be 'genesis block', got %q", genesis.Value())
	}
	if bc.Digest().Name != SHA256.Name {
		t.Fatalf("default digest should be %s, got %s", SHA256.Name, bc.Digest().Name)
	}
}

// TestGenesisOnlyChainVerifies checks that a lone genesis block passes
// verification whatever its payload.
func TestGenesisOnlyChainVerifies(t *testing.T) {
	for _, value := range []string{"genesis block", "", "0", strings.Repeat("x", 4096), "ünïcødé"} {
		bc := NewBlockchain(value)
		if err := bc.Verify(); err != nil {
			t.Fatalf("genesis-only chain with value %q should verify, got %v", value, err)
		}
	}
}

// TestAppendLinksToPreviousHash verifies append sets the link to the hash of
// the former tail and numbers blocks by chain length.
func TestAppendLinksToPreviousHash(t *testing.T) {
	bc := NewBlockchain("genesis block")
	genesisHash := bc.GetLatest().Hash()

	block := bc.Append("123")

	link, ok := block.Link()
	if !ok {
		t.Fatal("appended block should have a link")
	}
	if link != genesisHash {
		t.Fatalf("link should be %s, got %s", genesisHash, link)
	}
	if block.Sequence() != 2 {
		t.Fatalf("sequence should be 2, got %d", block.Sequence())
	}
	if block.Value() != "123" {
		t.Fatalf("value should be '123', got %q", block.Value())
	}

	third := bc.Append("456")
	if third.Sequence() != 3 {
		t.Fatalf("sequence should be 3, got %d", third.Sequence())
	}
	if link, _ := third.Link(); link != block.Hash() {
		t.Fatalf("third block should link to %s, got %s", block.Hash(), link)
	}
}

// TestAppendDoesNotAlterExistingBlocks ensures earlier blocks keep their hash
// after further appends.
func TestAppendDoesNotAlterExistingBlocks(t *testing.T) {
	bc := buildChain(t, "123")
	before := bc.Blocks()

	bc.Append("456")
	bc.Append("789")

	for i, b := range before {
		after, err := bc.GetByIndex(i)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if after.Hash() != b.Hash() {
			t.Fatalf("block %d changed after append", i)
		}
	}
}

// TestVerifyValidChains covers chains built only through construct and append.
func TestVerifyValidChains(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{name: "one append", values: []string{"123"}},
		{name: "three appends", values: []string{"123", "456", "789"}},
		{name: "empty payload in the middle", values: []string{"123", "", "789"}},
		{name: "empty payload at the tail", values: []string{"123", "456", ""}},
		{name: "repeated payloads", values: []string{"a", "a", "a", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := buildChain(t, tt.values...)
			if err := bc.Verify(); err != nil {
				t.Fatalf("expected valid chain, got %v", err)
			}
		})
	}
}

// TestVerifyLongChain appends many blocks and verifies the whole chain.
func TestVerifyLongChain(t *testing.T) {
	bc := NewBlockchain("genesis block")
	for i := 0; i < 1000; i++ {
		bc.Append(strings.Repeat("v", i%17))
	}
	if bc.Len() != 1001 {
		t.Fatalf("expected 1001 blocks, got %d", bc.Len())
	}
	if got := bc.GetLatest().Sequence(); got != 1001 {
		t.Fatalf("expected tail sequence 1001, got %d", got)
	}
	if err := bc.Verify(); err != nil {
		t.Fatalf("expected valid chain, got %v", err)
	}
}

// TestVerifyTamperedValueReportsNextBlock alters block 1 of a four block chain.
// The altered block changes its own hash, so the mismatch is found at block 2.
func TestVerifyTamperedValueReportsNextBlock(t *testing.T) {
	bc := buildChain(t, "123", "456", "789")
	staleHash := bc.blocks[1].Hash()

	bc.blocks[1].value = "foo"

	err := bc.Verify()
	expectTamperedAt(t, err, 2)

	var tampered *TamperedLinkError
	errors.As(err, &tampered)
	if tampered.Link != staleHash {
		t.Fatalf("reported link should be the stale hash %s, got %s", staleHash, tampered.Link)
	}
	if tampered.Expected != bc.blocks[1].Hash() {
		t.Fatalf("expected hash should be the recomputed %s, got %s", bc.blocks[1].Hash(), tampered.Expected)
	}
}

// TestVerifyTamperAtEveryPosition mutates the value and then the sequence of
// each non-tail block and expects the failure at the following block.
func TestVerifyTamperAtEveryPosition(t *testing.T) {
	values := []string{"123", "456", "789", "", "abc"}
	for i := 0; i < len(values); i++ {
		bc := buildChain(t, values...)
		bc.blocks[i].value += "!"
		expectTamperedAt(t, bc.Verify(), i+1)

		bc = buildChain(t, values...)
		bc.blocks[i].sequence += 10
		expectTamperedAt(t, bc.Verify(), i+1)
	}
}

// TestVerifyTamperedTailGoesUnnoticed documents that no block links to the
// tail, so altering it alone does not break verification.
func TestVerifyTamperedTailGoesUnnoticed(t *testing.T) {
	bc := buildChain(t, "123", "456")
	bc.blocks[2].value = "foo"

	if err := bc.Verify(); err != nil {
		t.Fatalf("tail tampering cannot be detected, got %v", err)
	}
}

// TestVerifyTamperedLink rewrites the link of a block directly.
func TestVerifyTamperedLink(t *testing.T) {
	bc := buildChain(t, "123", "456", "789")
	forged := strings.Repeat("0", 64)
	bc.blocks[2].link = &forged

	expectTamperedAt(t, bc.Verify(), 2)
}

// TestVerifyGenesisWithLink gives the first block a link. Nothing precedes it,
// so the link cannot match.
func TestVerifyGenesisWithLink(t *testing.T) {
	bc := buildChain(t, "123")
	forged := strings.Repeat("f", 64)
	bc.blocks[0].link = &forged

	err := bc.Verify()
	expectTamperedAt(t, err, 0)

	var tampered *TamperedLinkError
	errors.As(err, &tampered)
	if tampered.Expected != "" {
		t.Fatalf("genesis has no predecessor hash, got %s", tampered.Expected)
	}
}

// TestVerifySwappedBlocks swaps two adjacent non-genesis blocks without
// updating their links.
func TestVerifySwappedBlocks(t *testing.T) {
	bc := buildChain(t, "123", "456", "789")
	bc.blocks[1], bc.blocks[2] = bc.blocks[2], bc.blocks[1]

	expectTamperedAt(t, bc.Verify(), 1)
}

// TestVerifyAbsentLinkRestartsTrust shows that a block without a link is
// never checked, even past the genesis position.
func TestVerifyAbsentLinkRestartsTrust(t *testing.T) {
	bc := buildChain(t, "123", "456")
	bc.blocks[1].value = "foo"
	bc.blocks[2].link = nil

	if err := bc.Verify(); err != nil {
		t.Fatalf("a block without a link is accepted anywhere, got %v", err)
	}

	// Block 3 still links to the hash block 2 had before its link was dropped.
	bc = buildChain(t, "123", "456", "789")
	bc.blocks[2].link = nil
	expectTamperedAt(t, bc.Verify(), 3)
}

// TestHashDeterministic checks that repeated hashing of a block is stable.
func TestHashDeterministic(t *testing.T) {
	bc := buildChain(t, "123")
	block := bc.GetLatest()

	first := block.Hash()
	second := block.Hash()
	if first != second {
		t.Fatalf("hash should be deterministic: %s != %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(first))
	}
	if first != strings.ToLower(first) {
		t.Fatalf("hash should be lowercase hex, got %s", first)
	}
}

// TestHashKnownValues pins the hash scheme: link, decimal sequence and value
// concatenated, SHA-256, lowercase hex.
func TestHashKnownValues(t *testing.T) {
	bc := buildChain(t, "123")

	genesis, _ := bc.GetByIndex(0)
	if got := genesis.Hash(); got != "c8d788d4c08711b3a188794d26a1522064c95f23b7a623a2d3d9022071db50f8" {
		t.Fatalf("unexpected genesis hash %s", got)
	}
	if got := bc.GetLatest().Hash(); got != "e5498c4fef29b8ef121f7d9c5101469a0214d1e6ecf3d1b47227c3f65bdaa8ae" {
		t.Fatalf("unexpected second block hash %s", got)
	}
}

// TestHashEmptyLinkEqualsAbsentLink documents that the concatenation does not
// distinguish a missing link from an empty one.
func TestHashEmptyLinkEqualsAbsentLink(t *testing.T) {
	empty := ""
	absent := Block{sequence: 1, value: "x"}
	present := Block{link: &empty, sequence: 1, value: "x"}

	if absent.Hash() != present.Hash() {
		t.Fatalf("absent and empty links should hash alike: %s != %s", absent.Hash(), present.Hash())
	}
}

// TestHashRecomputedAfterMutation makes sure no hash is cached on the block.
func TestHashRecomputedAfterMutation(t *testing.T) {
	bc := buildChain(t, "123")
	before := bc.blocks[1].Hash()

	bc.blocks[1].value = "124"

	if bc.blocks[1].Hash() == before {
		t.Fatal("hash should change when the value changes")
	}
}

// TestGetByIndex checks bounds handling of GetByIndex.
func TestGetByIndex(t *testing.T) {
	bc := buildChain(t, "123", "456")

	block, err := bc.GetByIndex(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block.Value() != "456" {
		t.Fatalf("expected value '456', got %q", block.Value())
	}

	for _, index := range []int{-1, 3, 100} {
		if _, err := bc.GetByIndex(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
}

// TestBlocksReturnsCopy ensures callers cannot reorder the chain through the
// slice returned by Blocks.
func TestBlocksReturnsCopy(t *testing.T) {
	bc := buildChain(t, "123", "456")

	blocks := bc.Blocks()
	blocks[1], blocks[2] = blocks[2], blocks[1]
	blocks[0] = blocks[2]

	if bc.Len() != 3 {
		t.Fatalf("chain length should stay 3, got %d", bc.Len())
	}
	if err := bc.Verify(); err != nil {
		t.Fatalf("chain should be untouched, got %v", err)
	}
}

// TestVerifyTrace checks that verification logs each visited block.
func TestVerifyTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	bc := NewBlockchain("genesis block", WithLogger(logger))
	bc.Append("123")
	if err := bc.Verify(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Block number 0", "Block number 1", bc.GetLatest().Hash(), "chain verified"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace should contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	bc.blocks[0].value = "foo"
	bc.Append("456")
	if err := bc.Verify(); err == nil {
		t.Fatal("expected verification failure")
	}
	if !strings.Contains(buf.String(), "chain verification failed") {
		t.Fatalf("trace should report the failure, got:\n%s", buf.String())
	}
}

// TestBlockString checks the debug dump carries every field.
func TestBlockString(t *testing.T) {
	bc := buildChain(t, "123")

	genesis, _ := bc.GetByIndex(0)
	s := genesis.String()
	if !strings.Contains(s, "genesis block") || !strings.Contains(s, "Sequence:1") {
		t.Fatalf("unexpected genesis dump %s", s)
	}

	s = bc.GetLatest().String()
	if !strings.Contains(s, genesis.Hash()) || !strings.Contains(s, "123") {
		t.Fatalf("unexpected block dump %s", s)
	}
}

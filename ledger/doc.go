// Package ledger implements an in-memory, append-only chain of blocks where
// every block records the hash of its predecessor.
//
// # Core Components
//
// Block: A single record holding the link to the previous block's hash, a
// sequence counter and a text payload. Its hash is recomputed from those
// three fields every time it is requested.
//
// Blockchain: The ordered sequence of blocks. It is created with a genesis
// block and only grows at the tail.
//
// # Verification
//
// Verify walks the chain from the genesis block and checks that each stored
// link equals the freshly recomputed hash of the block before it. Any change
// to an earlier block surfaces as a TamperedLinkError at the first block whose
// link no longer matches. A block without a link is never checked.
//
// # Concurrency
//
// A Blockchain has no internal locking. Callers sharing one across goroutines
// must serialize Append and must not run Verify while an Append is in flight.
package ledger

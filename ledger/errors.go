package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrTamperedLink matches every TamperedLinkError with errors.Is.
	ErrTamperedLink    = errors.New("hash doesn't match, tampered link")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// TamperedLinkError reports the first block whose stored link differs from
// the recomputed hash of its predecessor.
type TamperedLinkError struct {
	Position int
	Link     string
	// Expected is the recomputed predecessor hash, empty when the block has
	// no predecessor.
	Expected string
}

func (e *TamperedLinkError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("block %d: link %s has no predecessor hash: %v", e.Position, e.Link, ErrTamperedLink)
	}
	return fmt.Sprintf("block %d: link %s, expected %s: %v", e.Position, e.Link, e.Expected, ErrTamperedLink)
}

func (e *TamperedLinkError) Unwrap() error {
	return ErrTamperedLink
}

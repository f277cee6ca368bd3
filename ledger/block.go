package ledger

import (
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

// Block is one record of the chain. Its fields are fixed when the chain
// creates it.
type Block struct {
	link     *string // nil for the genesis block
	sequence uint64
	value    string
	digest   Digest
}

var dumper = spew.ConfigState{DisablePointerAddresses: true, DisableCapacities: true}

// Link returns the hash of the preceding block and whether the block has one.
func (b Block) Link() (string, bool) {
	if b.link == nil {
		return "", false
	}
	return *b.link, true
}

func (b Block) Sequence() uint64 {
	return b.sequence
}

func (b Block) Value() string {
	return b.value
}

// Hash computes the lowercase hex digest of link, sequence and value,
// concatenated without separators. An absent link contributes nothing, so it
// hashes the same as an empty one.
func (b Block) Hash() string {
	link, _ := b.Link()
	data := link + strconv.FormatUint(b.sequence, 10) + b.value

	d := b.digest
	if d.Sum == nil {
		d = SHA256
	}
	return hex.EncodeToString(d.Sum([]byte(data)))
}

type blockFields struct {
	Link     *string
	Sequence uint64
	Value    string
}

// String dumps the block fields, e.g. {Link:<*>ab12... Sequence:2 Value:123}.
func (b Block) String() string {
	return dumper.Sprintf("%+v", blockFields{Link: b.link, Sequence: b.sequence, Value: b.value})
}

func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Link     *string `json:"link"`
		Sequence uint64  `json:"sequence"`
		Value    string  `json:"value"`
		Hash     string  `json:"hash"`
	}{
		Link:     b.link,
		Sequence: b.sequence,
		Value:    b.value,
		Hash:     b.Hash(),
	})
}

package ledger

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.dedis.ch/kyber/v4/suites"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// ErrUnknownDigest is returned by DigestByName for unregistered names.
var ErrUnknownDigest = errors.New("unknown digest")

// Digest is a 256-bit cryptographic hash function used to link blocks.
// Every block of a chain uses the same Digest.
type Digest struct {
	Name string
	Sum  func(data []byte) []byte
}

var suite = suites.MustFind("Ed25519")

// SHA256 is the default digest. The Ed25519 suite hashes with SHA-256.
var SHA256 = Digest{
	Name: "sha256",
	Sum: func(data []byte) []byte {
		h := suite.Hash()
		h.Write(data)
		return h.Sum(nil)
	},
}

var SHA3 = Digest{
	Name: "sha3-256",
	Sum: func(data []byte) []byte {
		sum := sha3.Sum256(data)
		return sum[:]
	},
}

var BLAKE2b = Digest{
	Name: "blake2b-256",
	Sum: func(data []byte) []byte {
		sum := blake2b.Sum256(data)
		return sum[:]
	},
}

// DoubleSHA256 hashes twice with SHA-256, the way Bitcoin block headers are hashed.
var DoubleSHA256 = Digest{
	Name: "sha256d",
	Sum:  chainhash.DoubleHashB,
}

var digests = map[string]Digest{
	SHA256.Name:       SHA256,
	SHA3.Name:         SHA3,
	BLAKE2b.Name:      BLAKE2b,
	DoubleSHA256.Name: DoubleSHA256,
}

// DigestByName returns the registered digest with the given name.
func DigestByName(name string) (Digest, error) {
	d, ok := digests[name]
	if !ok {
		return Digest{}, fmt.Errorf("%w: %q", ErrUnknownDigest, name)
	}
	return d, nil
}

// DigestNames lists the registered digest names in a stable order.
func DigestNames() []string {
	return []string{SHA256.Name, SHA3.Name, BLAKE2b.Name, DoubleSHA256.Name}
}

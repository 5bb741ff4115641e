// Package shortid generates the compact random tokens used as shareable
// creature identifiers.
package shortid

import (
	"crypto/rand"
	"math/big"
)

// Length of a generated identifier.
const Length = 8

// alphabet avoids characters that read ambiguously in a shared URL
// (0/O, 1/l/I).
const alphabet = "abcdefghijkmnpqrstuvwxyz23456789"

// New returns a new random short identifier. Uniqueness is probabilistic;
// callers are expected to retry on collision.
func New() string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, Length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// there is no reasonable recovery at this level.
			panic(err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

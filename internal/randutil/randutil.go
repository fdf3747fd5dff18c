package randutil

import (
	"crypto/rand"
	"io"
	"math/big"
)

var source io.Reader = rand.Reader

// Between returns a random int in [lo, hi) using crypto/rand, which is safe
// for concurrent use. If the system source fails it returns the midpoint.
func Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := hi - lo
	n, err := rand.Int(source, big.NewInt(int64(span)))
	if err != nil {
		return lo + span/2
	}
	return lo + int(n.Int64())
}

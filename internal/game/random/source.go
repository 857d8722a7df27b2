package random

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// float53 is the number of distinct float64 values drawn by cryptoSource.
var float53 = big.NewInt(1 << 53)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed in [0, 1) with
// 53 bits of precision.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand. It is the default
// source wired into every new fighter and is safe for concurrent use.
//
// Postcondition: Every value returned by Float64 is in [0, 1).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Float64 returns a cryptographically secure random float in [0, 1).
//
// Panics with "random: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Float64() float64 {
	val, err := rand.Int(rand.Reader, float53)
	if err != nil {
		panic("random: crypto/rand failure: " + err.Error())
	}
	return float64(val.Int64()) / (1 << 53)
}

// seededSource is a deterministic PCG generator. It is not safe for concurrent
// use; like the fighter that owns it, it must be confined to one goroutine.
type seededSource struct {
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source. Two sources built from the
// same seed produce identical sequences.
//
// Postcondition: Every value returned by Float64 is in [0, 1).
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns the next value of the seeded sequence.
func (s *seededSource) Float64() float64 {
	return s.rng.Float64()
}

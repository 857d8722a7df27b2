// Package random provides the randomness capability injected into fighters.
// Every probability check in combat draws from a Source so that outcomes can be
// reproduced exactly under a scripted or seeded implementation.
package random

// Source produces uniformly distributed values for probability checks.
type Source interface {
	// Float64 returns a value in [0, 1).
	//
	// Postcondition: 0 <= v < 1.
	Float64() float64
}

// SourceFunc adapts an ordinary function to Source.
type SourceFunc func() float64

// Float64 calls f.
func (f SourceFunc) Float64() float64 { return f() }

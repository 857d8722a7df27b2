package random

import "fmt"

// Fixed returns a Source that yields v on every draw.
//
// Precondition: 0 <= v < 1. Panics otherwise.
func Fixed(v float64) Source {
	checkUnit(v)
	return SourceFunc(func() float64 { return v })
}

// Sequence is a scripted Source that replays a fixed list of values, wrapping
// around to the first value once the list is exhausted.
type Sequence struct {
	values []float64
	next   int
	draws  int
}

// NewSequence returns a Sequence replaying values in order.
//
// Precondition: len(values) >= 1 and every value is in [0, 1). Panics otherwise.
func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		panic("random: NewSequence requires at least one value")
	}
	for _, v := range values {
		checkUnit(v)
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	return &Sequence{values: cp}
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	s.draws++
	return v
}

// Draws reports how many values have been drawn so far.
func (s *Sequence) Draws() int { return s.draws }

func checkUnit(v float64) {
	if v < 0 || v >= 1 {
		panic(fmt.Sprintf("random: scripted value %v outside [0, 1)", v))
	}
}

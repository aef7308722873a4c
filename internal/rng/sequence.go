package rng

import "sync"

// Sequence replays a fixed list of values
// Each value is reduced modulo n. Once the list is exhausted it starts over.
type Sequence struct {
	values []int
	next   int
	lock   sync.Mutex
}

// NewSequence returns a generator that replays values in order
func NewSequence(values ...int) *Sequence {
	if len(values) == 0 {
		panic("sequence requires at least one value")
	}

	return &Sequence{values: values}
}

// Intn returns the next value in the sequence, modulo n
func (s *Sequence) Intn(n int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)

	v %= n
	if v < 0 {
		v += n
	}

	return v
}

// Reset rewinds the sequence to the first value
func (s *Sequence) Reset() {
	s.lock.Lock()
	s.next = 0
	s.lock.Unlock()
}

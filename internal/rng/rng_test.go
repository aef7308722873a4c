package rng

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCrypto_Intn(t *testing.T) {
	a := assert.New(t)

	c := Crypto{}
	found := make(map[int]bool)
	// it's possible this could fail, but not likely
	for i := 0; i < 1000; i++ {
		found[c.Intn(6)] = true
	}

	for i := 0; i < 6; i++ {
		a.True(found[i], "found %d", i)
	}
	a.False(found[6])
}

func TestSequence_Intn(t *testing.T) {
	a := assert.New(t)

	s := NewSequence(3, 55, -1)
	a.Equal(3, s.Intn(52))
	a.Equal(3, s.Intn(52))
	a.Equal(51, s.Intn(52))
	a.Equal(3, s.Intn(6), "wraps around")

	s.Reset()
	a.Equal(3, s.Intn(6))

	a.Panics(func() {
		NewSequence()
	})
}

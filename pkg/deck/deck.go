package deck

import (
	"errors"
	"pokerv2-server/internal/rng"
)

// ErrEndOfDeck is an error when more cards are requested than the deck holds
var ErrEndOfDeck = errors.New("end of deck reached")

// ErrDrawExhausted happens when the generator keeps returning cards already drawn
var ErrDrawExhausted = errors.New("could not draw distinct cards")

// maxRejectsPerCard bounds rejection sampling against a broken generator
const maxRejectsPerCard = 1000

// Draw returns n distinct card values, in draw order
// Values are drawn uniformly from [0, 52); duplicates are rejected and drawn again.
func Draw(gen rng.Generator, n int) ([]int, error) {
	if n < 0 || n > Size {
		return nil, ErrEndOfDeck
	}

	drawn := make(map[int]bool, n)
	values := make([]int, 0, n)
	rejects := 0
	for len(values) < n {
		v := gen.Intn(Size)
		if drawn[v] {
			rejects++
			if rejects > maxRejectsPerCard*n {
				return nil, ErrDrawExhausted
			}

			continue
		}

		drawn[v] = true
		values = append(values, v)
	}

	return values, nil
}

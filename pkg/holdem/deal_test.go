package holdem

import (
	"pokerv2-server/internal/rng"
	"pokerv2-server/pkg/deck"
	"pokerv2-server/pkg/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func dealtValues(t *model.Table) []int {
	values := append([]int{}, t.Community[:]...)
	for _, p := range t.Players {
		values = append(values, p.Hole[:]...)
	}

	return values
}

func TestDeal(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(map[int]int{0: 1000, 3: 1000, 5: 1000})
	markInHand(tbl)

	gen := rng.NewSequence(10, 11, 12, 13, 14, 10, 20, 21, 22, 23, 24, 25)
	a.NoError(Deal(gen, tbl))
	a.Equal([model.CommunitySize]int{10, 11, 12, 13, 14}, tbl.Community)
	a.Equal([2]int{20, 21}, tbl.PlayerAt(0).Hole)
	a.Equal([2]int{22, 23}, tbl.PlayerAt(3).Hole)
	a.Equal([2]int{24, 25}, tbl.PlayerAt(5).Hole)

	// the same sequence deals the same hand
	again := newTestTable(map[int]int{0: 1000, 3: 1000, 5: 1000})
	markInHand(again)
	gen.Reset()
	a.NoError(Deal(gen, again))
	a.Equal(dealtValues(tbl), dealtValues(again))
}

func TestDeal_randomIsDistinct(t *testing.T) {
	a := assert.New(t)

	for n := 2; n <= model.SeatCount; n++ {
		seats := make(map[int]int)
		for i := 0; i < n; i++ {
			seats[i] = 1000
		}

		tbl := newTestTable(seats)
		markInHand(tbl)
		a.NoError(Deal(rng.Crypto{}, tbl))

		values := dealtValues(tbl)
		a.Len(values, 2*n+5)
		seen := make(map[int]bool)
		for _, v := range values {
			a.True(v >= 0 && v < deck.Size)
			a.False(seen[v], "card %d dealt twice", v)
			seen[v] = true
		}
	}
}

func TestDeal_skipsPlayersNotInHand(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(map[int]int{0: 1000, 1: 0, 2: 1000})
	markInHand(tbl)
	tbl.PlayerAt(1).Status = model.PlayerStatusSatOut

	a.NoError(Deal(rng.Crypto{}, tbl))
	a.Equal([2]int{deck.NoCard, deck.NoCard}, tbl.PlayerAt(1).Hole)
	a.NotEqual(deck.NoCard, tbl.PlayerAt(2).Hole[1])
}

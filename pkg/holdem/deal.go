package holdem

import (
	"pokerv2-server/internal/rng"
	"pokerv2-server/pkg/deck"
	"pokerv2-server/pkg/model"
)

// Deal draws the board and two cards for every player in the hand
// The first five cards go to the board, the rest go out in pairs in seat order.
func Deal(gen rng.Generator, t *model.Table) error {
	players := t.LivePlayers()
	cards, err := deck.Draw(gen, 2*len(players)+model.CommunitySize)
	if err != nil {
		return err
	}

	copy(t.Community[:], cards[:model.CommunitySize])
	cards = cards[model.CommunitySize:]
	for i, p := range players {
		p.Hole = [2]int{cards[2*i], cards[2*i+1]}
	}

	return nil
}

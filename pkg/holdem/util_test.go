package holdem

import (
	"pokerv2-server/pkg/deck"
	"pokerv2-server/pkg/model"
	"pokerv2-server/pkg/poker"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTable seats a player with the stack in each seat
// The user ID of each player is its seat + 1.
func newTestTable(stacks map[int]int) *model.Table {
	t := model.NewTable(1000)
	for seat := 0; seat < model.SeatCount; seat++ {
		stack, ok := stacks[seat]
		if !ok {
			continue
		}

		p := model.NewPlayer(&model.User{ID: userAt(seat), Name: "player"}, stack)
		p.Position = seat
		t.AddPlayer(p)
	}

	return t
}

func userAt(seat int) int64 {
	return int64(seat + 1)
}

func markInHand(t *model.Table) {
	for _, p := range t.Players {
		p.Status = model.PlayerStatusInHand
	}
}

// setCards overrides the dealt cards
func setCards(t *model.Table, community string, holes map[int]string) {
	copy(t.Community[:], deck.ValuesFromString(community))
	for seat, hole := range holes {
		copy(t.PlayerAt(seat).Hole[:], deck.ValuesFromString(hole))
	}
}

func act(t *testing.T, tbl *model.Table, seat int, action Action, amount int) {
	t.Helper()
	_, err := Act(tbl, userAt(seat), action, amount)
	require.NoError(t, err, "seat %d %s", seat, action)
}

// checkDown checks every remaining street until the hand is over
func checkDown(t *testing.T, tbl *model.Table) *Result {
	t.Helper()
	for i := 0; i < 20; i++ {
		result, err := Settle(tbl, poker.AnalyzerRanker{}, nil)
		require.NoError(t, err)
		if result != nil {
			return result
		}

		act(t, tbl, tbl.ActionPos, Check, 0)
	}

	assert.FailNow(t, "hand did not finish")
	return nil
}

func stacks(t *model.Table) map[int]int {
	out := make(map[int]int)
	for _, p := range t.Players {
		out[p.Position] = p.Stack
	}

	return out
}

package holdem

import (
	"fmt"
	"pokerv2-server/pkg/deck"
	"pokerv2-server/pkg/model"
	"pokerv2-server/pkg/poker"
	"pokerv2-server/pkg/potmanager"
	"strconv"
	"time"
)

// Award is what one player won
type Award struct {
	UserID   int64  `json:"userId"`
	Position int    `json:"position"`
	Amount   int    `json:"amount"`
	Hand     string `json:"hand,omitempty"`
}

// Result is the outcome of a finished hand
type Result struct {
	// Uncontested is true when everybody else folded or left
	Uncontested bool            `json:"uncontested"`
	Pots        potmanager.Pots `json:"pots"`
	Awards      []Award         `json:"awards"`
}

func seatID(seat int) string {
	return strconv.Itoa(seat)
}

// Resolve pays out the pot
// With a single player left it wins everything and no cards are shown. Otherwise every live
// hand is ranked and each main or side pot goes to its best eligible hand.
func Resolve(t *model.Table, ranker poker.Ranker, h *model.HandHistory) (*Result, error) {
	collectStreet(t, h)

	live := t.LivePlayers()
	var result *Result
	switch len(live) {
	case 0:
		// nobody left to pay, the chips are dead
		result = &Result{Uncontested: true, Pots: potmanager.Pots{}, Awards: []Award{}}
	case 1:
		result = &Result{
			Uncontested: true,
			Pots:        potmanager.Pots{{Amount: t.Pot, Eligible: []string{seatID(live[0].Position)}}},
			Awards: []Award{{
				UserID:   live[0].UserID,
				Position: live[0].Position,
				Amount:   t.Pot,
			}},
		}
	default:
		var err error
		if result, err = showdown(t, ranker, live); err != nil {
			return nil, err
		}

		t.Phase = model.PhaseShowdown
	}

	t.BettingSize = 0
	t.BettingPos = model.NoSeat
	t.ActionPos = model.NoSeat
	for _, award := range result.Awards {
		t.PlayerAt(award.Position).Stack += award.Amount
	}

	if h != nil {
		h.Community = t.Community
		for _, award := range result.Awards {
			h.Winners[award.UserID] += award.Amount
		}

		if !result.Uncontested {
			for _, p := range live {
				h.ShowdownUserIDs = append(h.ShowdownUserIDs, p.UserID)
			}
		}

		h.Finished = time.Now().UTC()
	}

	return result, nil
}

func showdown(t *model.Table, ranker poker.Ranker, live []*model.Player) (*Result, error) {
	wm := potmanager.NewWinManager()
	hands := make(map[string]string, len(live))
	for _, p := range live {
		values := append(append([]int{}, p.Hole[:]...), t.Community[:]...)
		cards, err := deck.FromValues(values...)
		if err != nil {
			return nil, err
		}

		ranking, err := ranker.Rank(cards)
		if err != nil {
			return nil, fmt.Errorf("could not rank seat %d: %w", p.Position, err)
		}

		id := seatID(p.Position)
		wm.AddParticipant(id, ranking.Strength)
		hands[id] = ranking.Description
	}

	participants := make([]potmanager.Participant, 0, model.SeatCount)
	for seat, contributed := range t.TotalCallSize {
		if contributed == 0 {
			continue
		}

		p := t.PlayerAt(seat)
		participants = append(participants, potmanager.Participant{
			ID:          seatID(seat),
			Contributed: contributed,
			Eligible:    p != nil && p.IsLive(),
		})
	}

	// odd chips go to the first winner left of the button
	oddChipOrder := make([]string, 0, model.SeatCount)
	for i := 1; i <= model.SeatCount; i++ {
		oddChipOrder = append(oddChipOrder, seatID((t.Button+i)%model.SeatCount))
	}

	pots := potmanager.Calculate(participants)
	payouts := pots.Pay(wm.GetSortedTiers(), oddChipOrder)

	awards := make([]Award, 0, len(payouts))
	for _, p := range live {
		id := seatID(p.Position)
		if amount, ok := payouts[id]; ok {
			awards = append(awards, Award{
				UserID:   p.UserID,
				Position: p.Position,
				Amount:   amount,
				Hand:     hands[id],
			})
		}
	}

	return &Result{
		Pots:   pots,
		Awards: awards,
	}, nil
}

package holdem

import (
	"pokerv2-server/internal/rng"
	"pokerv2-server/pkg/model"
	"pokerv2-server/pkg/poker"
)

// StartHand rotates the button, posts the blinds and deals
// Players without chips sit the hand out.
func StartHand(gen rng.Generator, t *model.Table, policy BlindPolicy) error {
	if t.Phase != model.PhaseWaiting {
		return model.ErrHandInProgress
	}

	if len(t.PlayersWithChips()) < 2 {
		return model.ErrNotEnoughPlayers
	}

	for _, p := range t.Players {
		if p.Stack > 0 {
			p.Status = model.PlayerStatusInHand
		} else {
			p.Status = model.PlayerStatusSatOut
		}

		p.PhaseCallSize = 0
		p.Acted = false
	}

	if err := MoveButton(t); err != nil {
		return err
	}

	if err := PostBlinds(t, policy); err != nil {
		return err
	}

	t.Phase = model.PhasePreFlop
	if err := Deal(gen, t); err != nil {
		return err
	}

	t.GameSeq++
	return nil
}

// Settle moves the hand along until a decision is needed or the hand is over
// Closed streets are collected and, when nobody is left to bet, the board runs out to
// showdown. Returns a nil result while the hand is still being played.
func Settle(t *model.Table, ranker poker.Ranker, h *model.HandHistory) (*Result, error) {
	if t.Phase == model.PhaseWaiting {
		return nil, nil
	}

	for {
		if len(t.LivePlayers()) <= 1 || t.Phase == model.PhaseShowdown {
			return Resolve(t, ranker, h)
		}

		if !t.Phase.IsBetting() || !StreetClosed(t) {
			return nil, nil
		}

		AdvanceStreet(t, h)
	}
}

// Leave takes the user off the table
// Mid-hand this is a fold: chips already bet stay in the pot as dead money.
func Leave(t *model.Table, userID int64) (*model.Player, error) {
	p := t.PlayerByUserID(userID)
	if p == nil {
		return nil, model.ErrPlayerNotFound
	}

	if t.Phase.IsBetting() {
		t.TotalCallSize[p.Position] += p.PhaseCallSize
		t.Pot += p.PhaseCallSize
		p.PhaseCallSize = 0
		p.Status = model.PlayerStatusFolded
	}

	if _, err := t.RemovePlayer(userID); err != nil {
		return nil, err
	}

	if t.Phase.IsBetting() {
		if p.Position == t.ActionPos {
			t.ActionPos = nextToAct(t, p.Position)
		}

		if p.Position == t.BettingPos {
			t.BettingPos = t.NextSeat(p.Position, func(other *model.Player) bool {
				return other.IsLive() && t.BettingSize > 0 && other.PhaseCallSize == t.BettingSize
			})
		}
	}

	// the button goes back to the seat before, so the next hand still rotates past the empty seat
	if p.Position == t.Button {
		t.Button = t.PrevSeat(p.Position, func(*model.Player) bool { return true })
	}

	t.Touch()
	return p, nil
}

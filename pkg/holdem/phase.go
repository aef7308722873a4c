package holdem

import (
	"pokerv2-server/pkg/deck"
	"pokerv2-server/pkg/model"
)

// NextPhase moves a betting street to the next phase
// Returns false, leaving the table alone, in WAITING and SHOWDOWN.
func NextPhase(t *model.Table) bool {
	next, ok := t.Phase.Next()
	if !ok {
		return false
	}

	t.Phase = next
	return true
}

// ResetHand clears everything about the last hand and returns the table to WAITING
// The button stays where it is so the next hand can rotate it.
func ResetHand(t *model.Table) {
	t.Phase = model.PhaseWaiting
	t.Pot = 0
	t.BettingSize = 0
	t.MinRaise = 0
	t.BettingPos = model.NoSeat
	t.ActionPos = model.NoSeat
	t.ClearCommunity()
	t.TotalCallSize = [model.SeatCount]int{}

	for _, p := range t.Players {
		p.PhaseCallSize = 0
		p.Acted = false
		p.Hole = [2]int{deck.NoCard, deck.NoCard}
		if p.Stack > 0 {
			p.Status = model.PlayerStatusWaiting
		} else {
			p.Status = model.PlayerStatusSatOut
		}
	}
}

// collectStreet moves every street contribution into the pot
func collectStreet(t *model.Table, h *model.HandHistory) {
	for _, p := range t.Players {
		t.TotalCallSize[p.Position] += p.PhaseCallSize
		t.Pot += p.PhaseCallSize
		p.PhaseCallSize = 0
		p.Acted = false
	}

	if h != nil {
		h.RecordStreet(t.Phase, t.Pot)
	}
}

// openStreet resets the betting state for a new street
// The first player able to act left of the button acts first.
func openStreet(t *model.Table) {
	t.BettingSize = 0
	t.MinRaise = t.Blind
	t.BettingPos = model.NoSeat
	t.ActionPos = t.NextSeat(t.Button, (*model.Player).CanAct)
}

// AdvanceStreet closes the current street and opens the next one
// Returns false outside of a betting street.
func AdvanceStreet(t *model.Table, h *model.HandHistory) bool {
	if !t.Phase.IsBetting() {
		return false
	}

	collectStreet(t, h)
	NextPhase(t)
	if t.Phase.IsBetting() {
		openStreet(t)
	} else {
		t.BettingSize = 0
		t.BettingPos = model.NoSeat
		t.ActionPos = model.NoSeat
	}

	t.Touch()
	return true
}

package holdem

import (
	"pokerv2-server/pkg/model"
)

// Decision is what a player did, as applied to the table
type Decision struct {
	UserID   int64  `json:"userId"`
	Position int    `json:"position"`
	Action   Action `json:"action"`
	// Amount is the player's total on the street after the action
	Amount int `json:"amount"`
}

// owesAction returns true when the player must still decide on this street
func owesAction(t *model.Table, p *model.Player) bool {
	return p.CanAct() && (!p.Acted || p.PhaseCallSize < t.BettingSize)
}

// nextToAct returns the first seat after from where a decision is owed
func nextToAct(t *model.Table, from int) int {
	return t.NextSeat(from, func(p *model.Player) bool {
		return owesAction(t, p)
	})
}

// StreetClosed returns true once nobody owes a decision on the current street
// A lone player who can still act but has matched the bet has nobody to bet against.
func StreetClosed(t *model.Table) bool {
	acting := t.ActingPlayers()
	if len(acting) <= 1 {
		for _, p := range acting {
			if p.PhaseCallSize < t.BettingSize {
				return false
			}
		}

		return true
	}

	return nextToAct(t, t.ActionPos) == model.NoSeat
}

// Act applies a betting decision for the player in the action position
// For bet and raise, amount is the street total the player is raising to.
func Act(t *model.Table, userID int64, action Action, amount int) (*Decision, error) {
	if !action.IsValid() {
		return nil, invalid(action, "unknown action")
	}

	if !t.Phase.IsBetting() {
		return nil, ErrNoBettingRound
	}

	p := t.PlayerByUserID(userID)
	if p == nil {
		return nil, model.ErrPlayerNotFound
	}

	if p.Position != t.ActionPos {
		return nil, ErrNotYourTurn
	}

	if !p.CanAct() {
		return nil, invalid(action, "player cannot act")
	}

	toCall := t.BettingSize - p.PhaseCallSize
	switch action {
	case Fold:
		p.Status = model.PlayerStatusFolded
	case Check:
		if toCall > 0 {
			return nil, invalid(action, "there is a bet to call")
		}
	case Call:
		if toCall <= 0 {
			return nil, invalid(action, "there is nothing to call")
		}

		p.Commit(toCall)
	case Bet:
		if t.BettingSize > 0 {
			return nil, invalid(action, "there is already a bet, raise instead")
		}

		if err := raiseTo(t, p, action, amount); err != nil {
			return nil, err
		}
	case Raise:
		if t.BettingSize == 0 {
			return nil, invalid(action, "there is no bet to raise")
		}

		if err := raiseTo(t, p, action, amount); err != nil {
			return nil, err
		}
	case AllIn:
		if err := raiseTo(t, p, action, p.PhaseCallSize+p.Stack); err != nil {
			return nil, err
		}
	}

	p.Acted = true
	t.ActionPos = nextToAct(t, p.Position)
	t.Touch()

	return &Decision{
		UserID:   p.UserID,
		Position: p.Position,
		Action:   action,
		Amount:   p.PhaseCallSize,
	}, nil
}

// raiseTo puts the player's street total at amount
// An all-in below the minimum raise (or below the bet) is allowed but does not reopen the betting.
func raiseTo(t *model.Table, p *model.Player, action Action, amount int) error {
	most := p.PhaseCallSize + p.Stack
	if amount > most {
		return invalid(action, "not enough chips")
	}

	allIn := amount == most
	increment := amount - t.BettingSize
	if !allIn {
		if increment <= 0 {
			return invalid(action, "amount must be more than the current bet")
		}

		if increment < t.MinRaise {
			return invalid(action, "amount is below the minimum raise")
		}
	}

	p.Commit(amount - p.PhaseCallSize)
	if increment <= 0 {
		// an all-in call for less
		return nil
	}

	t.BettingSize = amount
	t.BettingPos = p.Position
	if increment >= t.MinRaise {
		t.MinRaise = increment
		for _, other := range t.Players {
			if other != p {
				other.Acted = false
			}
		}
	}

	return nil
}

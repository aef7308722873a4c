package holdem

import "pokerv2-server/pkg/model"

// ErrNotYourTurn happens when a player acts out of turn
var ErrNotYourTurn = model.UserError("it is not your turn")

// ErrNoBettingRound happens when an action is taken outside of a betting street
var ErrNoBettingRound = model.UserError("no betting round in progress")

// ErrInvalidAction is returned for actions that are not legal in the current state
type ErrInvalidAction struct {
	Action Action
	Reason string
}

func (e ErrInvalidAction) Error() string {
	return "cannot " + string(e.Action) + ": " + e.Reason
}

func invalid(a Action, reason string) error {
	return ErrInvalidAction{Action: a, Reason: reason}
}

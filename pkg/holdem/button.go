package holdem

import "pokerv2-server/pkg/model"

func dealtIn(p *model.Player) bool {
	return p.Status != model.PlayerStatusSatOut
}

// MoveButton passes the button to the next seat that plays the hand
func MoveButton(t *model.Table) error {
	seat := t.NextSeat(t.Button, dealtIn)
	if seat == model.NoSeat {
		return model.ErrNoPlayers
	}

	t.Button = seat
	return nil
}

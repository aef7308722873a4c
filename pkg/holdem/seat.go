package holdem

import (
	"pokerv2-server/internal/rng"
	"pokerv2-server/pkg/model"
)

// AssignSeat puts the player in a free seat
// The probe starts on a random seat and walks forward, so it terminates within SeatCount steps.
func AssignSeat(gen rng.Generator, t *model.Table, player *model.Player) error {
	occupied := t.Occupied()
	start := gen.Intn(model.SeatCount)
	for i := 0; i < model.SeatCount; i++ {
		seat := (start + i) % model.SeatCount
		if occupied[seat] {
			continue
		}

		player.Position = seat
		t.AddPlayer(player)
		return nil
	}

	return model.ErrTableFull
}

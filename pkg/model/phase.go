package model

import (
	"encoding/json"
	"fmt"
)

// Phase is the street a table is on
type Phase int

// constants for Phase, in order
const (
	PhaseWaiting Phase = iota
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePreFlop:
		return "pre-flop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	}

	return ""
}

// IsBetting returns true for the four betting streets
func (p Phase) IsBetting() bool {
	return p >= PhasePreFlop && p <= PhaseRiver
}

// Next returns the following phase
// ok is false if p has no successor inside a hand (WAITING and SHOWDOWN)
func (p Phase) Next() (next Phase, ok bool) {
	if !p.IsBetting() {
		return p, false
	}

	return p + 1, true
}

// CommunityCards returns how many community cards are face up in this phase
func (p Phase) CommunityCards() int {
	switch p {
	case PhaseFlop:
		return 3
	case PhaseTurn:
		return 4
	case PhaseRiver, PhaseShowdown:
		return 5
	}

	return 0
}

type phaseJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MarshalJSON encodes JSON
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(phaseJSON{
		ID:   int(p),
		Name: p.String(),
	})
}

// UnmarshalJSON decodes JSON
func (p *Phase) UnmarshalJSON(b []byte) error {
	var pj phaseJSON
	if err := json.Unmarshal(b, &pj); err != nil {
		return err
	}

	if pj.ID < int(PhaseWaiting) || pj.ID > int(PhaseShowdown) {
		return fmt.Errorf("unknown phase: %d", pj.ID)
	}

	*p = Phase(pj.ID)
	return nil
}

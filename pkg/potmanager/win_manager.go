package potmanager

import (
	"sort"
)

type tier struct {
	strength     int
	participants []string
}

// WinManager groups participants by hand strength
type WinManager map[int]*tier

// NewWinManager returns an empty WinManager
func NewWinManager() WinManager {
	return make(WinManager)
}

// AddParticipant records the hand strength for a participant
func (w WinManager) AddParticipant(id string, handStrength int) {
	t, ok := w[handStrength]
	if !ok {
		t = &tier{
			strength:     handStrength,
			participants: make([]string, 0),
		}
	}

	t.participants = append(t.participants, id)
	w[handStrength] = t
}

// GetSortedTiers returns participant groups, best hand first
func (w WinManager) GetSortedTiers() [][]string {
	tiers := make([]*tier, 0, len(w))
	for _, t := range w {
		tiers = append(tiers, t)
	}

	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].strength > tiers[j].strength
	})

	tieredParticipants := make([][]string, len(tiers))
	for i, t := range tiers {
		tieredParticipants[i] = t.participants
	}

	return tieredParticipants
}

package model

import "time"

// HandHistory is the record of a finished hand
type HandHistory struct {
	ID         int64              `json:"id"`
	TableID    string             `json:"tableId"`
	GameSeq    int64              `json:"gameSeq"`
	Button     int                `json:"button"`
	PotPreFlop int                `json:"potPreFlop"`
	PotFlop    int                `json:"potFlop"`
	PotTurn    int                `json:"potTurn"`
	PotRiver   int                `json:"potRiver"`
	Community  [CommunitySize]int `json:"community"`
	// Positions and Cards describe the players dealt in
	// Cards holds two entries per position.
	Positions       []int   `json:"positions"`
	Cards           []int   `json:"cards"`
	ShowdownUserIDs []int64 `json:"showdownUserIds"`
	// Winners maps a user ID to the amount won
	Winners  map[int64]int `json:"winners"`
	Finished time.Time     `json:"finished"`
	Created  time.Time     `json:"created"`
}

// NewHandHistory starts the record of the table's current hand
func NewHandHistory(t *Table) *HandHistory {
	h := &HandHistory{
		TableID:         t.ID,
		GameSeq:         t.GameSeq,
		Button:          t.Button,
		Community:       t.Community,
		Positions:       make([]int, 0, len(t.Players)),
		Cards:           make([]int, 0, len(t.Players)*2),
		ShowdownUserIDs: make([]int64, 0),
		Winners:         make(map[int64]int),
		Created:         time.Now().UTC(),
	}

	for _, p := range t.Players {
		if p.Status == PlayerStatusSatOut || p.Status == PlayerStatusWaiting {
			continue
		}

		h.Positions = append(h.Positions, p.Position)
		h.Cards = append(h.Cards, p.Hole[0], p.Hole[1])
	}

	return h
}

// RecordStreet stores the pot size at the end of a street
func (h *HandHistory) RecordStreet(phase Phase, pot int) {
	switch phase {
	case PhasePreFlop:
		h.PotPreFlop = pot
	case PhaseFlop:
		h.PotFlop = pot
	case PhaseTurn:
		h.PotTurn = pot
	case PhaseRiver:
		h.PotRiver = pot
	}
}

// Clone returns a deep copy of the record
func (h *HandHistory) Clone() *HandHistory {
	cp := *h
	cp.Positions = append([]int(nil), h.Positions...)
	cp.Cards = append([]int(nil), h.Cards...)
	cp.ShowdownUserIDs = append([]int64(nil), h.ShowdownUserIDs...)
	cp.Winners = make(map[int64]int, len(h.Winners))
	for userID, amount := range h.Winners {
		cp.Winners[userID] = amount
	}

	return &cp
}

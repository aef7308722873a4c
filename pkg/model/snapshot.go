package model

import (
	"pokerv2-server/pkg/deck"
	"time"
)

// TableView is the table as a given viewer is allowed to see it
type TableView struct {
	ID             string             `json:"id"`
	GameSeq        int64              `json:"gameSeq"`
	Blind          int                `json:"blind"`
	TotalPlayer    int                `json:"totalPlayer"`
	Pot            int                `json:"pot"`
	Button         int                `json:"button"`
	BettingPos     int                `json:"bettingPos"`
	ActionPos      int                `json:"actionPos"`
	Phase          Phase              `json:"phase"`
	BettingSize    int                `json:"bettingSize"`
	MinRaise       int                `json:"minRaise"`
	Community      [CommunitySize]int `json:"community"`
	TotalCallSize  [SeatCount]int     `json:"totalCallSize"`
	Players        []*PlayerView      `json:"players"`
	LastActionTime time.Time          `json:"lastActionTime"`
}

// PlayerView is a player as a given viewer is allowed to see it
type PlayerView struct {
	ID            string       `json:"id"`
	UserID        int64        `json:"userId"`
	DisplayName   string       `json:"displayName"`
	Position      int          `json:"position"`
	Stack         int          `json:"stack"`
	PhaseCallSize int          `json:"phaseCallSize"`
	Status        PlayerStatus `json:"status"`
	Hole          [2]int       `json:"hole"`
	Acted         bool         `json:"acted"`
}

// Snapshot returns the table with hidden cards masked
// Community cards past the phase are hidden. Hole cards are only visible to
// their owner, or to everyone for live players at showdown. Pass 0 for a
// spectator view.
func (t *Table) Snapshot(viewerUserID int64) *TableView {
	view := &TableView{
		ID:             t.ID,
		GameSeq:        t.GameSeq,
		Blind:          t.Blind,
		TotalPlayer:    t.TotalPlayer,
		Pot:            t.Pot,
		Button:         t.Button,
		BettingPos:     t.BettingPos,
		ActionPos:      t.ActionPos,
		Phase:          t.Phase,
		BettingSize:    t.BettingSize,
		MinRaise:       t.MinRaise,
		TotalCallSize:  t.TotalCallSize,
		Players:        make([]*PlayerView, len(t.Players)),
		LastActionTime: t.LastActionTime,
	}

	visible := t.Phase.CommunityCards()
	for i := range view.Community {
		if i < visible {
			view.Community[i] = t.Community[i]
		} else {
			view.Community[i] = deck.NoCard
		}
	}

	for i, p := range t.Players {
		pv := &PlayerView{
			ID:            p.ID,
			UserID:        p.UserID,
			DisplayName:   p.DisplayName,
			Position:      p.Position,
			Stack:         p.Stack,
			PhaseCallSize: p.PhaseCallSize,
			Status:        p.Status,
			Hole:          [2]int{deck.NoCard, deck.NoCard},
			Acted:         p.Acted,
		}

		if p.UserID == viewerUserID || (t.Phase == PhaseShowdown && p.IsLive()) {
			pv.Hole = p.Hole
		}

		view.Players[i] = pv
	}

	return view
}

package model

import (
	"pokerv2-server/pkg/deck"
	"time"

	"github.com/google/uuid"
)

// PlayerStatus is where a player stands in the current hand
type PlayerStatus string

// constants for PlayerStatus
const (
	PlayerStatusWaiting PlayerStatus = "waiting"
	PlayerStatusFolded  PlayerStatus = "folded"
	PlayerStatusInHand  PlayerStatus = "in-hand"
	PlayerStatusAllIn   PlayerStatus = "all-in"
	PlayerStatusSatOut  PlayerStatus = "sat-out"
)

// Player is a seat taken by a user at a table
type Player struct {
	ID          string `json:"id"`
	TableID     string `json:"tableId"`
	UserID      int64  `json:"userId"`
	DisplayName string `json:"displayName"`
	Position    int    `json:"position"`
	Stack       int    `json:"stack"`
	// PhaseCallSize is what the player put in on the current street
	PhaseCallSize int          `json:"phaseCallSize"`
	Status        PlayerStatus `json:"status"`
	Hole          [2]int       `json:"hole"`
	// Acted is true once the player acted since the last bet or raise on this street
	Acted   bool      `json:"acted"`
	Created time.Time `json:"created"`
}

// NewPlayer returns a player holding stack chips, not yet seated
func NewPlayer(user *User, stack int) *Player {
	return &Player{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		DisplayName: user.Name,
		Position:    NoSeat,
		Stack:       stack,
		Status:      PlayerStatusWaiting,
		Hole:        [2]int{deck.NoCard, deck.NoCard},
		Created:     time.Now().UTC(),
	}
}

// CanAct returns true if the player still owes decisions this hand
func (p *Player) CanAct() bool {
	return p.Status == PlayerStatusInHand
}

// IsLive returns true if the player was dealt in and has not folded
func (p *Player) IsLive() bool {
	return p.Status == PlayerStatusInHand || p.Status == PlayerStatusAllIn
}

// Commit moves chips from the stack to the current street
// The amount is capped at the stack; the player is all-in once the stack is empty.
func (p *Player) Commit(amount int) int {
	if amount > p.Stack {
		amount = p.Stack
	}

	p.Stack -= amount
	p.PhaseCallSize += amount
	if p.Stack == 0 && p.IsLive() {
		p.Status = PlayerStatusAllIn
	}

	return amount
}

func (p *Player) clone() *Player {
	cp := *p
	return &cp
}

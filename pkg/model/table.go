package model

import (
	"pokerv2-server/pkg/deck"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"
)

// SeatCount is the number of seats at every table
const SeatCount = 6

// CommunitySize is the number of community cards in a hand
const CommunitySize = 5

// NoSeat is used for positions that are not set
const NoSeat = -1

// Table is the aggregate root of a game
// A table exclusively owns its seated players
type Table struct {
	ID          string `json:"id"`
	GameSeq     int64  `json:"gameSeq"`
	Blind       int    `json:"blind"`
	TotalPlayer int    `json:"totalPlayer"`
	// Pot holds the chips collected from closed streets
	Pot    int `json:"pot"`
	Button int `json:"button"`
	// BettingPos is the seat where the current wager originated
	BettingPos int `json:"bettingPos"`
	// ActionPos is the seat that must act next
	ActionPos int   `json:"actionPos"`
	Phase     Phase `json:"phase"`
	// BettingSize is the amount each player must have in to stay in the street
	BettingSize int                `json:"bettingSize"`
	MinRaise    int                `json:"minRaise"`
	Community   [CommunitySize]int `json:"community"`
	// TotalCallSize is what each seat put into the hand on closed streets
	TotalCallSize  [SeatCount]int `json:"totalCallSize"`
	Players        []*Player      `json:"players"`
	LastActionTime time.Time      `json:"lastActionTime"`
	Created        time.Time      `json:"created"`
	Updated        time.Time      `json:"updated"`
}

// NewTable returns an empty table in the waiting phase
func NewTable(blind int) *Table {
	now := time.Now().UTC()
	t := &Table{
		ID:         uuid.New().String(),
		Blind:      blind,
		Button:     NoSeat,
		BettingPos: NoSeat,
		ActionPos:  NoSeat,
		Phase:      PhaseWaiting,
		Players:    make([]*Player, 0, SeatCount),
		Created:    now,
		Updated:    now,
	}

	t.ClearCommunity()
	return t
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	cp := *t
	cp.Players = make([]*Player, len(t.Players))
	for i, p := range t.Players {
		cp.Players[i] = p.clone()
	}

	return &cp
}

// ClearCommunity empties every community card slot
func (t *Table) ClearCommunity() {
	for i := range t.Community {
		t.Community[i] = deck.NoCard
	}
}

// Occupied returns the occupancy of every seat
func (t *Table) Occupied() [SeatCount]bool {
	var seats [SeatCount]bool
	for _, p := range t.Players {
		if p.Position >= 0 && p.Position < SeatCount {
			seats[p.Position] = true
		}
	}

	return seats
}

// PlayerAt returns the player in the seat, or nil
func (t *Table) PlayerAt(seat int) *Player {
	for _, p := range t.Players {
		if p.Position == seat {
			return p
		}
	}

	return nil
}

// PlayerByUserID returns the player for the user, or nil
func (t *Table) PlayerByUserID(userID int64) *Player {
	for _, p := range t.Players {
		if p.UserID == userID {
			return p
		}
	}

	return nil
}

// AddPlayer seats the player, keeping players in seat order
func (t *Table) AddPlayer(player *Player) {
	player.TableID = t.ID
	t.Players = append(t.Players, player)
	sort.SliceStable(t.Players, func(i, j int) bool {
		return t.Players[i].Position < t.Players[j].Position
	})
	t.TotalPlayer = len(t.Players)
}

// RemovePlayer takes the user's player out of its seat
func (t *Table) RemovePlayer(userID int64) (*Player, error) {
	for i, p := range t.Players {
		if p.UserID == userID {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			t.TotalPlayer = len(t.Players)
			return p, nil
		}
	}

	return nil, ErrPlayerNotFound
}

// NextSeat returns the first seat after from, wrapping, whose player matches
// The from seat itself is checked last. Returns NoSeat if nothing matches.
func (t *Table) NextSeat(from int, match func(p *Player) bool) int {
	if from < 0 {
		from = SeatCount - 1
	}

	for i := 1; i <= SeatCount; i++ {
		seat := (from + i) % SeatCount
		if p := t.PlayerAt(seat); p != nil && match(p) {
			return seat
		}
	}

	return NoSeat
}

// PrevSeat returns the first seat before from, wrapping, whose player matches
// Returns NoSeat if nothing matches.
func (t *Table) PrevSeat(from int, match func(p *Player) bool) int {
	if from < 0 {
		from = 0
	}

	for i := 1; i <= SeatCount; i++ {
		seat := (from - i + SeatCount) % SeatCount
		if p := t.PlayerAt(seat); p != nil && match(p) {
			return seat
		}
	}

	return NoSeat
}

// PlayersWithChips returns the players that can be dealt into a hand
func (t *Table) PlayersWithChips() []*Player {
	return funk.Filter(t.Players, func(p *Player) bool {
		return p.Stack > 0
	}).([]*Player)
}

// LivePlayers returns the players who have not folded in the current hand
func (t *Table) LivePlayers() []*Player {
	return funk.Filter(t.Players, func(p *Player) bool {
		return p.IsLive()
	}).([]*Player)
}

// ActingPlayers returns the players who can still make a decision this hand
func (t *Table) ActingPlayers() []*Player {
	return funk.Filter(t.Players, func(p *Player) bool {
		return p.CanAct()
	}).([]*Player)
}

// StreetTotal is everything committed on the current street
func (t *Table) StreetTotal() int {
	total := 0
	for _, p := range t.Players {
		total += p.PhaseCallSize
	}

	return total
}

// Touch stamps the last action time
func (t *Table) Touch() {
	t.LastActionTime = time.Now().UTC()
}

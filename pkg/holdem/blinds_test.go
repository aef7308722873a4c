package holdem

import (
	"pokerv2-server/pkg/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostBlinds_headsUp(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(map[int]int{2: 10000, 5: 10000})
	markInHand(tbl)
	tbl.Button = 2

	a.NoError(PostBlinds(tbl, BlindPolicyAllIn))
	button, other := tbl.PlayerAt(2), tbl.PlayerAt(5)
	a.Equal(9500, button.Stack)
	a.Equal(9000, other.Stack)
	a.Equal(500, button.PhaseCallSize)
	a.Equal(1000, other.PhaseCallSize)
	a.Equal(5, tbl.BettingPos)
	a.Equal(2, tbl.ActionPos, "the button acts first heads-up")
	a.Equal(1000, tbl.BettingSize)
	a.Equal(1000, tbl.MinRaise)
	a.False(tbl.LastActionTime.IsZero())
}

func TestPostBlinds_multiWay(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(map[int]int{0: 10000, 1: 10000, 2: 10000, 3: 10000})
	markInHand(tbl)
	tbl.Button = 0

	a.NoError(PostBlinds(tbl, BlindPolicyAllIn))
	a.Equal(map[int]int{0: 10000, 1: 9500, 2: 9000, 3: 10000}, stacks(tbl))
	a.Equal(2, tbl.BettingPos)
	a.Equal(3, tbl.ActionPos)
}

func TestPostBlinds_threeWayButtonActsFirst(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(map[int]int{0: 10000, 2: 10000, 4: 10000})
	markInHand(tbl)
	tbl.Button = 4

	a.NoError(PostBlinds(tbl, BlindPolicyAllIn))
	a.Equal(map[int]int{0: 9500, 2: 9000, 4: 10000}, stacks(tbl))
	a.Equal(2, tbl.BettingPos)
	a.Equal(4, tbl.ActionPos)
}

func TestPostBlinds_shortStackAllIn(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(map[int]int{0: 10000, 1: 10000, 2: 600})
	markInHand(tbl)
	tbl.Button = 0

	a.NoError(PostBlinds(tbl, BlindPolicyAllIn))
	bb := tbl.PlayerAt(2)
	a.Equal(0, bb.Stack)
	a.Equal(600, bb.PhaseCallSize)
	a.Equal(model.PlayerStatusAllIn, bb.Status)
	a.Equal(1000, tbl.BettingSize)
	a.Equal(2, tbl.BettingPos)
	a.Equal(0, tbl.ActionPos)

	// an exact stack is an all-in too
	tbl = newTestTable(map[int]int{0: 10000, 1: 10000, 2: 1000})
	markInHand(tbl)
	tbl.Button = 0
	a.NoError(PostBlinds(tbl, BlindPolicyAllIn))
	a.Equal(model.PlayerStatusAllIn, tbl.PlayerAt(2).Status)
}

func TestPostBlinds_rejectPolicy(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(map[int]int{0: 10000, 1: 10000, 2: 1000})
	markInHand(tbl)
	tbl.Button = 0
	a.Equal(model.ErrInsufficientFunds, PostBlinds(tbl, BlindPolicyReject))

	tbl = newTestTable(map[int]int{0: 10000, 1: 10000, 2: 1001})
	markInHand(tbl)
	tbl.Button = 0
	a.NoError(PostBlinds(tbl, BlindPolicyReject))
	a.Equal(1, tbl.PlayerAt(2).Stack)
}

func TestPostBlinds_notEnoughPlayers(t *testing.T) {
	tbl := newTestTable(map[int]int{0: 10000})
	markInHand(tbl)
	tbl.Button = 0
	assert.Equal(t, model.ErrNotEnoughPlayers, PostBlinds(tbl, BlindPolicyAllIn))
}

func TestParseBlindPolicy(t *testing.T) {
	a := assert.New(t)

	p, err := ParseBlindPolicy("")
	a.NoError(err)
	a.Equal(BlindPolicyAllIn, p)

	p, err = ParseBlindPolicy("reject")
	a.NoError(err)
	a.Equal(BlindPolicyReject, p)

	_, err = ParseBlindPolicy("whatever")
	a.EqualError(err, "unknown blind policy: whatever")
}

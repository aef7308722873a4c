package holdem

import (
	"fmt"
	"pokerv2-server/pkg/model"
)

// BlindPolicy decides what happens when a stack cannot cover a forced bet
type BlindPolicy string

// constants for BlindPolicy
const (
	// BlindPolicyAllIn posts the whole stack and puts the player all-in
	BlindPolicyAllIn BlindPolicy = "all-in"
	// BlindPolicyReject fails the post unless the stack is larger than the blind
	BlindPolicyReject BlindPolicy = "reject"
)

// ParseBlindPolicy returns the policy for the name, defaulting to all-in
func ParseBlindPolicy(s string) (BlindPolicy, error) {
	switch BlindPolicy(s) {
	case "", BlindPolicyAllIn:
		return BlindPolicyAllIn, nil
	case BlindPolicyReject:
		return BlindPolicyReject, nil
	}

	return "", fmt.Errorf("unknown blind policy: %s", s)
}

// SmallBlind is the half blind
func SmallBlind(t *model.Table) int {
	return t.Blind / 2
}

// PostBlinds collects the forced bets and sets who acts first
// Heads-up, the button posts the small blind and acts first. Otherwise the two seats after
// the button post and the seat after the big blind acts first.
func PostBlinds(t *model.Table, policy BlindPolicy) error {
	inHand := func(p *model.Player) bool {
		return p.Status == model.PlayerStatusInHand
	}

	headsUp := len(t.ActingPlayers()) == 2

	var sbSeat, bbSeat int
	if headsUp {
		sbSeat = t.Button
		bbSeat = t.NextSeat(sbSeat, inHand)
	} else {
		sbSeat = t.NextSeat(t.Button, inHand)
		bbSeat = t.NextSeat(sbSeat, inHand)
	}

	sb, bb := t.PlayerAt(sbSeat), t.PlayerAt(bbSeat)
	if sb == nil || bb == nil || sb == bb {
		return model.ErrNotEnoughPlayers
	}

	if err := post(sb, SmallBlind(t), policy); err != nil {
		return err
	}

	if err := post(bb, t.Blind, policy); err != nil {
		return err
	}

	t.BettingSize = t.Blind
	t.MinRaise = t.Blind
	t.BettingPos = bbSeat
	if headsUp {
		t.ActionPos = sbSeat
	} else {
		t.ActionPos = t.NextSeat(bbSeat, (*model.Player).IsLive)
	}

	if p := t.PlayerAt(t.ActionPos); p == nil || !p.CanAct() {
		t.ActionPos = nextToAct(t, t.ActionPos)
	}

	t.Touch()
	return nil
}

func post(p *model.Player, amount int, policy BlindPolicy) error {
	if policy == BlindPolicyReject && p.Stack <= amount {
		return model.ErrInsufficientFunds
	}

	p.Commit(amount)
	return nil
}

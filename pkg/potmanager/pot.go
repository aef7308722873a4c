package potmanager

import (
	"encoding/json"
	"sort"
)

// Pot is a main or side pot
type Pot struct {
	Amount int
	// Eligible lists the IDs that can win this pot, in the order participants were given
	Eligible []string
}

type potJSON struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
}

// MarshalJSON provides custom marshalling
func (p Pot) MarshalJSON() ([]byte, error) {
	eligible := p.Eligible
	if eligible == nil {
		eligible = []string{}
	}

	return json.Marshal(potJSON{
		Amount:   p.Amount,
		Eligible: eligible,
	})
}

// Pots is a collection of pots, main pot first
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}

// Calculate builds the main pot and side pots from each participant's contribution
// A pot is created for every distinct amount an eligible participant was all-in for. Money
// at a level nobody eligible reached (i.e., an uncalled bet from a player who then left) is
// added to the last pot.
func Calculate(participants []Participant) Pots {
	levelSet := make(map[int]bool)
	for _, pt := range participants {
		if pt.Eligible && pt.Contributed > 0 {
			levelSet[pt.Contributed] = true
		}
	}

	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	pots := make(Pots, 0, len(levels))
	prevLevel := 0
	for _, level := range levels {
		pot := &Pot{}
		for _, pt := range participants {
			amount := pt.Contributed
			if amount > level {
				amount = level
			}

			if diff := amount - prevLevel; diff > 0 {
				pot.Amount += diff
			}

			if pt.Eligible && pt.Contributed >= level {
				pot.Eligible = append(pot.Eligible, pt.ID)
			}
		}

		pots = append(pots, pot)
		prevLevel = level
	}

	// dead money above the highest eligible level
	overflow := 0
	for _, pt := range participants {
		if diff := pt.Contributed - prevLevel; diff > 0 {
			overflow += diff
		}
	}

	if overflow > 0 {
		if len(pots) == 0 {
			pots = append(pots, &Pot{})
		}

		pots[len(pots)-1].Amount += overflow
	}

	return pots
}

// Pay awards every pot to the best tier of eligible participants
// tiers come from WinManager.GetSortedTiers. Ties split the pot evenly; odd chips go one at a
// time to the tied winners in the order they appear in oddChipOrder (first seat left of the button first).
func (p Pots) Pay(tiers [][]string, oddChipOrder []string) map[string]int {
	rank := make(map[string]int, len(oddChipOrder))
	for i, id := range oddChipOrder {
		rank[id] = i
	}

	payouts := make(map[string]int)
	for _, pot := range p {
		if pot.Amount == 0 {
			continue
		}

		winners := pot.winners(tiers)
		if len(winners) == 0 {
			continue
		}

		sort.SliceStable(winners, func(i, j int) bool {
			return rank[winners[i]] < rank[winners[j]]
		})

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, id := range winners {
			won := share
			if i < remainder {
				won++
			}

			payouts[id] += won
		}
	}

	return payouts
}

func (p *Pot) winners(tiers [][]string) []string {
	eligible := make(map[string]bool, len(p.Eligible))
	for _, id := range p.Eligible {
		eligible[id] = true
	}

	for _, tier := range tiers {
		winners := make([]string, 0, len(tier))
		for _, id := range tier {
			if eligible[id] {
				winners = append(winners, id)
			}
		}

		if len(winners) > 0 {
			return winners
		}
	}

	return nil
}

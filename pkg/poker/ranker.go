package poker

import (
	"fmt"
	"pokerv2-server/pkg/deck"

	evaluator "github.com/paulhankin/poker"
)

// Ranking is the result of evaluating a set of cards
// Strength values are only comparable between rankings from the same Ranker
type Ranking struct {
	Strength    int    `json:"strength"`
	Description string `json:"description"`
}

// Ranker ranks the best five card hand available in a set of cards
type Ranker interface {
	Rank(cards []*deck.Card) (Ranking, error)
}

// ranker names accepted by NewRanker
const (
	RankerAnalyzer = "analyzer"
	RankerEval7    = "eval7"
)

// NewRanker returns the ranker registered under name
func NewRanker(name string) (Ranker, error) {
	switch name {
	case "", RankerAnalyzer:
		return AnalyzerRanker{}, nil
	case RankerEval7:
		return Eval7Ranker{}, nil
	}

	return nil, fmt.Errorf("unknown hand ranker: %s", name)
}

// AnalyzerRanker ranks cards with the HandAnalyzer
type AnalyzerRanker struct{}

// Rank implements Ranker
func (AnalyzerRanker) Rank(cards []*deck.Card) (Ranking, error) {
	if len(cards) < handSize {
		return Ranking{}, fmt.Errorf("need at least %d cards, got %d", handSize, len(cards))
	}

	h := NewHandAnalyzer(cards)
	return Ranking{
		Strength:    h.GetStrength(),
		Description: h.GetHand().String(),
	}, nil
}

// Eval7Ranker ranks exactly seven cards with a lookup table evaluator
type Eval7Ranker struct{}

// Rank implements Ranker
func (Eval7Ranker) Rank(cards []*deck.Card) (Ranking, error) {
	if len(cards) != 7 {
		return Ranking{}, fmt.Errorf("eval7 needs 7 cards, got %d", len(cards))
	}

	var hand [7]evaluator.Card
	for i, c := range cards {
		ec, err := evaluator.MakeCard(evaluator.Suit(c.SuitIndex()), evaluator.Rank(c.AceLowRank()))
		if err != nil {
			return Ranking{}, fmt.Errorf("invalid card %s: %w", c, err)
		}

		hand[i] = ec
	}

	desc, err := evaluator.Describe(hand[:])
	if err != nil {
		return Ranking{}, err
	}

	return Ranking{
		Strength:    int(evaluator.Eval7(&hand)),
		Description: desc,
	}, nil
}

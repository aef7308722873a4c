package poker

import (
	"math"
	"pokerv2-server/pkg/deck"
	"sort"
)

// handSize is the number of cards that make a hand
const handSize = 5

// HandAnalyzer finds the best five card hand from any number of cards
type HandAnalyzer struct {
	cards         []*deck.Card
	flush         []int
	quads         []int
	trips         []int
	pairs         []int
	straightFlush int
	straight      int

	hand     Hand
	strength int
}

// NewHandAnalyzer will return a new HandAnalyzer instance
func NewHandAnalyzer(cards []*deck.Card) *HandAnalyzer {
	newCards := make([]*deck.Card, len(cards))
	copy(newCards, cards)

	sort.SliceStable(newCards, func(i, j int) bool {
		return newCards[i].Rank > newCards[j].Rank
	})

	h := &HandAnalyzer{
		cards: newCards,
	}

	// the method order here is required
	h.analyzeHand()
	h.calculateHand()
	h.strength = h.calculateStrength()

	return h
}

// analyzeHand will loop through the cards and record the various combinations
// This method should only be called once from the constructor
func (h *HandAnalyzer) analyzeHand() {
	// keeps track of flushes
	suitCounts := make(map[deck.Suit][]int)

	// straight-flush tracker
	sfTracker := map[deck.Suit]*straightTracker{
		deck.Clubs:    {},
		deck.Diamonds: {},
		deck.Hearts:   {},
		deck.Spades:   {},
	}

	// straight tracker
	sTracker := straightTracker{}

	// keeps track of pairs, trips, and quads
	prevRank := math.MaxInt8
	numOfRank := 0

	nCards := len(h.cards)
	for i, card := range h.cards {
		if h.straightFlush == 0 {
			checkStraight(card, sfTracker[card.Suit], deck.HighAce, &h.straightFlush)
		}

		if h.straight == 0 {
			checkStraight(card, &sTracker, deck.HighAce, &h.straight)
		}

		if h.flush == nil {
			h.checkFlush(card, suitCounts)
		}

		h.checkPairs(card, &prevRank, &numOfRank, i+1 == nCards)
	}

	// aces play low as well: A-2-3-4-5
	for _, card := range h.cards {
		if card.Rank != deck.Ace {
			break
		}

		if h.straightFlush == 0 {
			checkStraight(card, sfTracker[card.Suit], deck.LowAce, &h.straightFlush)
		}

		if h.straight == 0 {
			checkStraight(card, &sTracker, deck.LowAce, &h.straight)
		}
	}
}

func (h *HandAnalyzer) checkFlush(card *deck.Card, suitCounts map[deck.Suit][]int) {
	ranks := append(suitCounts[card.Suit], card.Rank)
	suitCounts[card.Suit] = ranks

	if len(ranks) >= handSize {
		h.flush = ranks
	}
}

func (h *HandAnalyzer) checkPairs(card *deck.Card, prevRank, numOfRank *int, isLastCard bool) {
	if card.Rank == *prevRank {
		*numOfRank++
	}

	// the group ends when the rank changes; the last card closes the final group
	if card.Rank != *prevRank || isLastCard {
		switch *numOfRank {
		case 4:
			h.quads = append(h.quads, *prevRank)
		case 3:
			h.trips = append(h.trips, *prevRank)
		case 2:
			h.pairs = append(h.pairs, *prevRank)
		}

		*numOfRank = 1
	}

	*prevRank = card.Rank
}

// calculateHand will determine the best hand
// This must be called after analyzeHand() has been called
func (h *HandAnalyzer) calculateHand() {
	if h.GetRoyalFlush() {
		h.hand = RoyalFlush
	} else if _, ok := h.GetStraightFlush(); ok {
		h.hand = StraightFlush
	} else if _, ok := h.GetFourOfAKind(); ok {
		h.hand = FourOfAKind
	} else if _, ok := h.GetFullHouse(); ok {
		h.hand = FullHouse
	} else if _, ok := h.GetFlush(); ok {
		h.hand = Flush
	} else if _, ok := h.GetStraight(); ok {
		h.hand = Straight
	} else if _, ok := h.GetThreeOfAKind(); ok {
		h.hand = ThreeOfAKind
	} else if _, ok := h.GetTwoPair(); ok {
		h.hand = TwoPair
	} else if _, ok := h.GetPair(); ok {
		h.hand = OnePair
	} else {
		h.hand = HighCard
	}
}

// GetHand will return the best possible hand the cards can make
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetStrength returns a comparable value, higher is better
func (h *HandAnalyzer) GetStrength() int {
	return h.strength
}

// GetRoyalFlush will return true if there's a royal flush
func (h *HandAnalyzer) GetRoyalFlush() bool {
	return h.straightFlush == deck.Ace
}

// GetStraightFlush will return the best straight flush, if possible
func (h *HandAnalyzer) GetStraightFlush() (int, bool) {
	if h.straightFlush > 0 {
		return h.straightFlush, true
	}

	return 0, false
}

// GetFourOfAKind will return the best four of a kind, if possible
func (h *HandAnalyzer) GetFourOfAKind() (int, bool) {
	if len(h.quads) > 0 {
		return h.quads[0], true
	}

	return 0, false
}

// GetFullHouse will return the best full house, if possible
func (h *HandAnalyzer) GetFullHouse() ([]int, bool) {
	if len(h.trips) == 0 {
		return nil, false
	}

	trips := h.trips[0]

	pair, ok := h.GetPair()
	if !ok {
		if len(h.trips) == 1 {
			return nil, false
		}

		pair = h.trips[1]
	} else if len(h.trips) >= 2 && h.trips[1] > pair {
		pair = h.trips[1]
	}

	return []int{trips, pair}, true
}

// GetFlush will return the ranks of the best possible flush, if possible
func (h *HandAnalyzer) GetFlush() ([]int, bool) {
	if h.flush != nil {
		return h.flush, true
	}

	return nil, false
}

// GetStraight will return the high card of the best straight, if possible
func (h *HandAnalyzer) GetStraight() (int, bool) {
	if h.straight > 0 {
		return h.straight, true
	}

	return 0, false
}

// GetThreeOfAKind will return the best three of a kind, if possible
func (h *HandAnalyzer) GetThreeOfAKind() (int, bool) {
	if len(h.trips) > 0 {
		return h.trips[0], true
	}

	return 0, false
}

// GetTwoPair will return the best two pairs, if possible
func (h *HandAnalyzer) GetTwoPair() ([]int, bool) {
	if len(h.pairs) >= 2 {
		return h.pairs[0:2], true
	}

	return nil, false
}

// GetPair will return the best pair, if possible
func (h *HandAnalyzer) GetPair() (int, bool) {
	if len(h.pairs) > 0 {
		return h.pairs[0], true
	}

	return 0, false
}

// GetHighCard will return the high card
func (h *HandAnalyzer) GetHighCard() (int, bool) {
	if len(h.cards) == 0 {
		return 0, false
	}

	return h.cards[0].Rank, true
}

// kickers returns up to n ranks from the highest cards, skipping the excluded ranks
func (h *HandAnalyzer) kickers(n int, exclude ...int) []int {
	ranks := make([]int, 0, n)
CardLoop:
	for _, card := range h.cards {
		if len(ranks) == n {
			break
		}

		for _, ex := range exclude {
			if card.Rank == ex {
				continue CardLoop
			}
		}

		ranks = append(ranks, card.Rank)
	}

	return ranks
}

func (h *HandAnalyzer) calculateStrength() int {
	switch h.hand {
	case RoyalFlush, StraightFlush:
		sf, _ := h.GetStraightFlush()
		return calculateStrength(h.hand, []int{sf})
	case FourOfAKind:
		quads, _ := h.GetFourOfAKind()
		return calculateStrength(h.hand, append([]int{quads}, h.kickers(1, quads)...))
	case FullHouse:
		fh, _ := h.GetFullHouse()
		return calculateStrength(h.hand, fh)
	case Flush:
		f, _ := h.GetFlush()
		return calculateStrength(h.hand, f)
	case Straight:
		s, _ := h.GetStraight()
		return calculateStrength(h.hand, []int{s})
	case ThreeOfAKind:
		trips, _ := h.GetThreeOfAKind()
		return calculateStrength(h.hand, append([]int{trips}, h.kickers(2, trips)...))
	case TwoPair:
		tp, _ := h.GetTwoPair()
		return calculateStrength(h.hand, append([]int{tp[0], tp[1]}, h.kickers(1, tp[0], tp[1])...))
	case OnePair:
		pair, _ := h.GetPair()
		return calculateStrength(h.hand, append([]int{pair}, h.kickers(3, pair)...))
	default:
		return calculateStrength(h.hand, h.kickers(handSize))
	}
}

// calculateStrength encodes the hand and up to five ranks as base-15 digits
func calculateStrength(hand Hand, ranks []int) int {
	fiveCards := make([]int, handSize)
	copy(fiveCards, ranks)

	strength := int(hand)
	for _, r := range fiveCards {
		strength = strength*15 + r
	}

	return strength
}

package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// suits is the suit order used by the card value encoding
var suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// Size is the number of distinct cards
const Size = 52

// NoCard marks an empty card slot
const NoCard = -1

// face cards
const (
	Jack    = 11
	Queen   = 12
	King    = 13
	Ace     = 14
	HighAce = Ace
	LowAce  = 1
)

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// FromValue decodes a card value in [0, 52)
// Values are ordered by suit (clubs, diamonds, hearts, spades), then by rank from 2 to ace
func FromValue(v int) (*Card, error) {
	if v < 0 || v >= Size {
		return nil, fmt.Errorf("card value %d out of range", v)
	}

	return &Card{
		Rank: v%13 + 2,
		Suit: suits[v/13],
	}, nil
}

// MustFromValue is FromValue for values known to be valid
func MustFromValue(v int) *Card {
	c, err := FromValue(v)
	if err != nil {
		panic(err)
	}

	return c
}

// FromValues decodes a list of card values, skipping empty slots
func FromValues(values ...int) ([]*Card, error) {
	cards := make([]*Card, 0, len(values))
	for _, v := range values {
		if v == NoCard {
			continue
		}

		c, err := FromValue(v)
		if err != nil {
			return nil, err
		}

		cards = append(cards, c)
	}

	return cards, nil
}

// Value encodes the card as a value in [0, 52)
func (c *Card) Value() int {
	for i, s := range suits {
		if s == c.Suit {
			return i*13 + c.Rank - 2
		}
	}

	panic("unknown suit")
}

// SuitIndex returns the position of the suit in the encoding order
func (c *Card) SuitIndex() int {
	return c.Value() / 13
}

func (c *Card) String() string {
	var rank string
	switch c.Rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%s%s", rank, suit)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// AceLowRank return the rank where Ace is considered low instead of high
func (c *Card) AceLowRank() int {
	if c.Rank == Ace {
		return LowAce
	}

	return c.Rank
}

var cardRx = regexp.MustCompile(`(?i)^([2-9]|1[0-4])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs]
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return &Card{
		Rank: rank,
		Suit: suit,
	}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// ValuesFromString parses "14c,2d" into card values
func ValuesFromString(s string) []int {
	cards := CardsFromString(s)
	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = c.Value()
	}

	return values
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	return fmt.Sprintf("%d%c", card.Rank, card.Suit[0])
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}

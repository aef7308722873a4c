package deck

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
	assert.Equal(t, -1, NoCard)
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("2♡", (&Card{Rank: 2, Suit: Hearts}).String())
	a.Equal("J♣", (&Card{Rank: 11, Suit: Clubs}).String())
	a.Equal("Q♢", (&Card{Rank: 12, Suit: Diamonds}).String())
	a.Equal("K♠", (&Card{Rank: 13, Suit: Spades}).String())
	a.Equal("A♠", (&Card{Rank: 14, Suit: Spades}).String())
}

func TestFromValue(t *testing.T) {
	a := assert.New(t)

	c, err := FromValue(0)
	a.NoError(err)
	a.Equal(&Card{Rank: 2, Suit: Clubs}, c)

	c, err = FromValue(12)
	a.NoError(err)
	a.Equal(&Card{Rank: Ace, Suit: Clubs}, c)

	c, err = FromValue(13)
	a.NoError(err)
	a.Equal(&Card{Rank: 2, Suit: Diamonds}, c)

	c, err = FromValue(51)
	a.NoError(err)
	a.Equal(&Card{Rank: Ace, Suit: Spades}, c)

	_, err = FromValue(52)
	a.EqualError(err, "card value 52 out of range")
	_, err = FromValue(NoCard)
	a.Error(err)
}

func TestCard_Value(t *testing.T) {
	for v := 0; v < Size; v++ {
		c := MustFromValue(v)
		assert.Equal(t, v, c.Value(), c.String())
		assert.Equal(t, v/13, c.SuitIndex())
	}
}

func TestFromValues(t *testing.T) {
	a := assert.New(t)

	cards, err := FromValues(0, NoCard, 51)
	a.NoError(err)
	a.Equal("2c,14s", CardsToString(cards))

	_, err = FromValues(0, 99)
	a.Error(err)
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)
	a.Nil(CardFromString(""))
	a.Equal(&Card{Rank: 10, Suit: Hearts}, CardFromString("10h"))
	a.Equal(&Card{Rank: Ace, Suit: Diamonds}, CardFromString("14D"))

	a.PanicsWithValue("could not parse card: 1c", func() {
		CardFromString("1c")
	})
}

func TestCardsToString(t *testing.T) {
	a := assert.New(t)
	cards := CardsFromString("2c,13d,14h,9s")
	a.Equal(4, len(cards))
	a.Equal("2c,13d,14h,9s", CardsToString(cards))
	a.Equal([]int{0, 24, 38, 46}, ValuesFromString("2c,13d,14h,9s"))
	a.Equal(0, len(CardsFromString("")))
}

func TestCard_AceLowRank(t *testing.T) {
	assert.Equal(t, 1, CardFromString("14c").AceLowRank())
	assert.Equal(t, 13, CardFromString("13c").AceLowRank())
}

package engine

import (
	"errors"
	"strings"
)

type Suit int

type Rank int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

type Card struct {
	Rank Rank
	Suit Suit
}

var ErrBadCard = errors.New("bad_card")

var rankToChar = map[Rank]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7", Eight: "8", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

var charToRank = map[byte]Rank{
	'2': Two, '3': Three, '4': Four, '5': Five, '6': Six, '7': Seven, '8': Eight, '9': Nine, 'T': Ten, 'J': Jack, 'Q': Queen, 'K': King, 'A': Ace,
}

var charToSuit = map[byte]Suit{'s': Spades, 'h': Hearts, 'd': Diamonds, 'c': Clubs}

func (c Card) String() string {
	s := map[Suit]string{Spades: "s", Hearts: "h", Diamonds: "d", Clubs: "c"}[c.Suit]
	return rankToChar[c.Rank] + s
}

// ParseCard parses two-character notation like "As" or "td".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "10", "T")
	if len(s) != 2 {
		return Card{}, ErrBadCard
	}
	r, ok := charToRank[strings.ToUpper(s[:1])[0]]
	if !ok {
		return Card{}, ErrBadCard
	}
	suit, ok := charToSuit[strings.ToLower(s[1:])[0]]
	if !ok {
		return Card{}, ErrBadCard
	}
	return Card{Rank: r, Suit: suit}, nil
}

// ParseCards normalizes a card group that may arrive as a compact string
// ("AsKdQh"), a list of two-character tokens, or a list of single characters
// ("A","s","K","d"). All three encodings collapse to the same card list.
func ParseCards(tokens ...string) ([]Card, error) {
	joined := strings.ReplaceAll(strings.Join(tokens, ""), " ", "")
	joined = strings.ReplaceAll(joined, "10", "T")
	if len(joined)%2 != 0 {
		return nil, ErrBadCard
	}
	out := make([]Card, 0, len(joined)/2)
	for i := 0; i+1 < len(joined); i += 2 {
		c, err := ParseCard(joined[i : i+2])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func cardStrings(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}

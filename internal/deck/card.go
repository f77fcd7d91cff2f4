package deck

import (
	"fmt"
	"strings"
	"unicode"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists the four suits in deck-building order
var Suits = [4]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks in a deck
const NumRanks = 13

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Index returns the zero-based position of the rank (Two=0 ... Ace=12),
// used to address per-rank tables such as counting weights.
func (r Rank) Index() int {
	return int(r - Two)
}

// Value returns the blackjack value of the rank. Aces are 11; hand
// arithmetic demotes them to 1 when needed.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// IsTen reports whether the rank is worth ten (10, J, Q, K)
func (r Rank) IsTen() bool {
	return r >= Ten && r <= King
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠", "10♥")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Value returns the blackjack value of the card
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCard parses a single card such as "As", "Th", "10h" or "A♠"
func ParseCard(s string) (Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}
	return cards[0], nil
}

// ParseCards parses a run of cards like "AsKh", "10h 9c" or "A♠,K♥".
// Whitespace and commas between cards are ignored.
func ParseCards(s string) ([]Card, error) {
	runes := []rune(s)
	cards := []Card{}

	for i := 0; i < len(runes); {
		if unicode.IsSpace(runes[i]) || runes[i] == ',' {
			i++
			continue
		}

		rank, width, err := parseRank(runes[i:])
		if err != nil {
			return nil, err
		}
		i += width
		if i >= len(runes) {
			return nil, fmt.Errorf("missing suit after rank %s in %q", rank, s)
		}

		suit, err := parseSuit(runes[i])
		if err != nil {
			return nil, err
		}
		i++

		cards = append(cards, NewCard(suit, rank))
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error. Intended for tests and
// static tables.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// ParseRank parses a rank on its own ("2".."10", "T", "J", "Q", "K", "A")
func ParseRank(s string) (Rank, error) {
	runes := []rune(strings.TrimSpace(s))
	rank, width, err := parseRank(runes)
	if err != nil {
		return 0, err
	}
	if width != len(runes) {
		return 0, fmt.Errorf("invalid rank: %q", s)
	}
	return rank, nil
}

func parseRank(runes []rune) (Rank, int, error) {
	if len(runes) == 0 {
		return 0, 0, fmt.Errorf("empty rank")
	}
	if len(runes) >= 2 && runes[0] == '1' && runes[1] == '0' {
		return Ten, 2, nil
	}

	switch unicode.ToUpper(runes[0]) {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return Rank(runes[0] - '0'), 1, nil
	case 'T':
		return Ten, 1, nil
	case 'J':
		return Jack, 1, nil
	case 'Q':
		return Queen, 1, nil
	case 'K':
		return King, 1, nil
	case 'A':
		return Ace, 1, nil
	}
	return 0, 0, fmt.Errorf("invalid rank: %c", runes[0])
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 's', 'S', '♠':
		return Spades, nil
	case 'h', 'H', '♥':
		return Hearts, nil
	case 'd', 'D', '♦':
		return Diamonds, nil
	case 'c', 'C', '♣':
		return Clubs, nil
	}
	return 0, fmt.Errorf("invalid suit: %c", r)
}

package simulator

import (
	"strings"

	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/rules"
)

// Status is the lifecycle state of a player hand
type Status uint8

const (
	Active Status = iota
	Stood
	Busted
	Surrendered
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Stood:
		return "stood"
	case Busted:
		return "busted"
	case Surrendered:
		return "surrendered"
	default:
		return "unknown"
	}
}

// Hand is one player hand and its wager
type Hand struct {
	Cards   []deck.Card
	Bet     float64
	Status  Status
	Split   bool // produced by splitting a pair
	Doubled bool
}

// Value returns the best total of the hand
func (h *Hand) Value() int {
	return rules.HandValue(h.Cards)
}

// Settle returns the net result of the hand against a dealer total
func (h *Hand) Settle(dealerTotal int) float64 {
	switch h.Status {
	case Surrendered:
		return -h.Bet / 2
	case Busted:
		return -h.Bet
	}

	player := h.Value()
	switch {
	case dealerTotal > 21, player > dealerTotal:
		return h.Bet
	case player < dealerTotal:
		return -h.Bet
	default:
		return 0
	}
}

func (h *Hand) String() string {
	var b strings.Builder
	for i, c := range h.Cards {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	return b.String()
}

func formatCards(cards []deck.Card) string {
	h := Hand{Cards: cards}
	return h.String()
}

// Package rules holds table rule parameters and blackjack hand arithmetic.
package rules

import (
	"errors"
	"fmt"

	"github.com/lox/bjsim/internal/deck"
)

// ErrInvalidRules is wrapped by every rule validation failure
var ErrInvalidRules = errors.New("invalid rules")

// Rules describes a table. It is a plain value and is never mutated during
// a simulation.
type Rules struct {
	Decks            int
	DealerHitsSoft17 bool
	BlackjackPayout  float64
	SurrenderAllowed bool
	DoubleAfterSplit bool
	// Penetration is the fraction of the full shoe remaining below which the
	// shoe is reshuffled before the next round.
	Penetration float64
	// MaxSplitHands caps the number of hands a player can build by
	// splitting. Zero means unlimited.
	MaxSplitHands int
}

// Default returns a common six deck shoe game
func Default() Rules {
	return Rules{
		Decks:            6,
		DealerHitsSoft17: true,
		BlackjackPayout:  1.5,
		SurrenderAllowed: true,
		DoubleAfterSplit: true,
		Penetration:      0.25,
	}
}

// Validate checks that the rules describe a playable table
func (r Rules) Validate() error {
	if r.Decks < 1 || r.Decks > 8 {
		return fmt.Errorf("%w: decks must be between 1 and 8, got %d", ErrInvalidRules, r.Decks)
	}
	if r.BlackjackPayout <= 0 {
		return fmt.Errorf("%w: blackjack payout must be positive, got %g", ErrInvalidRules, r.BlackjackPayout)
	}
	if r.Penetration <= 0 || r.Penetration > 1 {
		return fmt.Errorf("%w: penetration must be in (0, 1], got %g", ErrInvalidRules, r.Penetration)
	}
	if r.MaxSplitHands < 0 {
		return fmt.Errorf("%w: max split hands cannot be negative, got %d", ErrInvalidRules, r.MaxSplitHands)
	}
	return nil
}

// CanSplitAgain reports whether a player already holding hands can split once more
func (r Rules) CanSplitAgain(hands int) bool {
	return r.MaxSplitHands == 0 || hands < r.MaxSplitHands
}

// DealerShouldHit applies the dealer drawing policy: hit below 17, and hit
// soft 17 when the table says so.
func (r Rules) DealerShouldHit(cards []deck.Card) bool {
	total, soft := evaluate(cards)
	if total < 17 {
		return true
	}
	return total == 17 && soft && r.DealerHitsSoft17
}

// HandValue returns the best total that does not exceed 21, or the all-low
// total when every arrangement of Aces busts.
func HandValue(cards []deck.Card) int {
	total, _ := evaluate(cards)
	return total
}

// IsSoft reports whether the hand's best total counts an Ace as 11
func IsSoft(cards []deck.Card) bool {
	_, soft := evaluate(cards)
	return soft
}

// IsBlackjack reports a two card 21
func IsBlackjack(cards []deck.Card) bool {
	return len(cards) == 2 && HandValue(cards) == 21
}

// IsBusted reports a hand over 21 under every Ace arrangement
func IsBusted(cards []deck.Card) bool {
	return HandValue(cards) > 21
}

// evaluate sums base values (Aces as 11), then demotes Aces one at a time
// while the total exceeds 21. soft is true when an Ace is still counted high.
func evaluate(cards []deck.Card) (total int, soft bool) {
	highAces := 0
	for _, c := range cards {
		total += c.Value()
		if c.IsAce() {
			highAces++
		}
	}
	for total > 21 && highAces > 0 {
		total -= 10
		highAces--
	}
	return total, highAces > 0
}

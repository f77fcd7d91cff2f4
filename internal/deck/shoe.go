package deck

import (
	rand "math/rand/v2"
)

// CardsPerDeck is the size of a single standard deck
const CardsPerDeck = 52

// Shoe is a multi-deck stack of cards dealt from the top. The shoe never
// seeds its own randomness; callers own the *rand.Rand so runs can be
// reproduced and parallelised.
type Shoe struct {
	decks int
	cards []Card
	rng   *rand.Rand

	onRebuild func()
}

// NewShoe builds and shuffles a shoe of the given number of decks
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if decks < 1 {
		decks = 1
	}
	s := &Shoe{
		decks: decks,
		cards: make([]Card, 0, decks*CardsPerDeck),
		rng:   rng,
	}
	s.Reshuffle()
	return s
}

// Reshuffle rebuilds the shoe from fresh decks and shuffles it. Each deck is
// shuffled on its own before the combined stack is shuffled again.
func (s *Shoe) Reshuffle() {
	s.cards = s.cards[:0]
	for i := 0; i < s.decks; i++ {
		start := len(s.cards)
		for _, suit := range Suits {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
		s.shuffle(s.cards[start:])
	}
	s.shuffle(s.cards)
}

func (s *Shoe) shuffle(cards []Card) {
	s.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// OnRebuild registers fn to run whenever Deal has to rebuild an empty shoe,
// before the first card of the new shoe is returned.
func (s *Shoe) OnRebuild(fn func()) {
	s.onRebuild = fn
}

// Deal removes and returns the top card. An empty shoe is rebuilt on the
// spot; normal play reshuffles earlier through the penetration check.
func (s *Shoe) Deal() Card {
	if len(s.cards) == 0 {
		s.Reshuffle()
		if s.onRebuild != nil {
			s.onRebuild()
		}
	}
	top := len(s.cards) - 1
	card := s.cards[top]
	s.cards = s.cards[:top]
	return card
}

// Decks returns the number of decks the shoe is built from
func (s *Shoe) Decks() int {
	return s.decks
}

// CardsRemaining returns the number of undealt cards
func (s *Shoe) CardsRemaining() int {
	return len(s.cards)
}

// DecksRemaining returns the undealt cards measured in decks. The value is
// continuous and recomputed on every call.
func (s *Shoe) DecksRemaining() float64 {
	return float64(len(s.cards)) / CardsPerDeck
}

// Remaining returns the fraction of the full shoe that is still undealt
func (s *Shoe) Remaining() float64 {
	return float64(len(s.cards)) / float64(s.decks*CardsPerDeck)
}

package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjsim/internal/randutil"
)

func TestNewShoe(t *testing.T) {
	shoe := NewShoe(6, randutil.New(1))

	assert.Equal(t, 6*52, shoe.CardsRemaining())
	assert.InDelta(t, 6.0, shoe.DecksRemaining(), 1e-9)
	assert.InDelta(t, 1.0, shoe.Remaining(), 1e-9)

	counts := map[Card]int{}
	for shoe.CardsRemaining() > 0 {
		counts[shoe.Deal()]++
	}
	require.Len(t, counts, 52)
	for card, n := range counts {
		assert.Equal(t, 6, n, "card %s", card)
	}
}

func TestShoeDecksRemainingTracksDeals(t *testing.T) {
	shoe := NewShoe(2, randutil.New(2))
	for i := 0; i < 26; i++ {
		shoe.Deal()
	}
	assert.InDelta(t, 1.5, shoe.DecksRemaining(), 1e-9)
	assert.InDelta(t, 0.75, shoe.Remaining(), 1e-9)
}

func TestShoeRebuildsWhenEmpty(t *testing.T) {
	shoe := NewShoe(1, randutil.New(3))
	for i := 0; i < 52; i++ {
		shoe.Deal()
	}
	require.Zero(t, shoe.CardsRemaining())

	shoe.Deal()
	assert.Equal(t, 51, shoe.CardsRemaining())
}

func TestShoeOnRebuild(t *testing.T) {
	shoe := NewShoe(1, randutil.New(3))
	rebuilds := 0
	shoe.OnRebuild(func() { rebuilds++ })

	for i := 0; i < 52; i++ {
		shoe.Deal()
	}
	shoe.Reshuffle()
	assert.Zero(t, rebuilds, "explicit reshuffles are not rebuilds")

	for i := 0; i < 53; i++ {
		shoe.Deal()
	}
	assert.Equal(t, 1, rebuilds)
	assert.Equal(t, 51, shoe.CardsRemaining())
}

func TestShoeSeedReproducible(t *testing.T) {
	a := NewShoe(4, randutil.New(99))
	b := NewShoe(4, randutil.New(99))
	c := NewShoe(4, randutil.New(100))

	same, differ := true, false
	for i := 0; i < 52; i++ {
		x, y, z := a.Deal(), b.Deal(), c.Deal()
		if x != y {
			same = false
		}
		if x != z {
			differ = true
		}
	}
	assert.True(t, same, "same seed should deal the same sequence")
	assert.True(t, differ, "different seeds should deal different sequences")
}

func TestShoeMinimumOneDeck(t *testing.T) {
	shoe := NewShoe(0, randutil.New(4))
	assert.Equal(t, 1, shoe.Decks())
	assert.Equal(t, 52, shoe.CardsRemaining())
}

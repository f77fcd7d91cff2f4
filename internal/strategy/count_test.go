package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjsim/internal/deck"
)

func TestSystemsRegistered(t *testing.T) {
	all := Systems()
	require.Len(t, all, 16)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name, all[i].Name, "systems should be sorted")
	}
	for _, s := range all {
		assert.NotEmpty(t, s.Name)
	}
}

func TestLookupSystem(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hi-lo", "hi-lo"},
		{"Hi-Lo", "hi-lo"},
		{"hilo", "hi-lo"},
		{"hi-lo opt I", "hi-lo opt i"},
		{"Hi-Opt II", "hi-lo opt ii"},
		{"KO", "k-o"},
		{"  wong   halves ", "wong halves"},
		{"uston_apc", "uston apc"},
		{"zen", "zen count"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := LookupSystem(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name)
		})
	}

	_, err := LookupSystem("martingale")
	assert.ErrorIs(t, err, ErrUnknownSystem)
}

func TestSystemWeights(t *testing.T) {
	ranks := []deck.Rank{deck.Two, deck.Three, deck.Four, deck.Five, deck.Six, deck.Seven, deck.Eight, deck.Nine, deck.Ten, deck.Ace}

	// weights for 2 through 9, ten-cards, Ace
	tests := []struct {
		name string
		want [10]float64
	}{
		{"hi-lo", [10]float64{1, 1, 1, 1, 1, 0, 0, 0, -1, -1}},
		{"hi-lo opt i", [10]float64{0, 1, 1, 1, 1, 0, 0, 0, -1, 0}},
		{"hi-lo opt ii", [10]float64{1, 1, 2, 2, 1, 1, 0, 0, -2, 0}},
		{"k-o", [10]float64{1, 1, 1, 1, 1, 1, 0, 0, -1, -1}},
		{"mentor", [10]float64{1, 2, 2, 2, 2, 1, 0, -1, -2, -1}},
		{"omega ii", [10]float64{1, 1, 2, 2, 2, 1, 0, -1, -2, 0}},
		{"rkeo", [10]float64{1, 1, 1, 1, 1, 1, 0, 0, -1, -1}},
		{"reverse point count", [10]float64{1, 2, 2, 2, 2, 1, 0, 0, -2, -2}},
		{"reverse 14 count", [10]float64{2, 2, 3, 4, 2, 1, 0, -2, -3, 0}},
		{"reverse rapc", [10]float64{2, 3, 3, 4, 3, 2, 0, -1, -3, -4}},
		{"silver fox", [10]float64{1, 1, 1, 1, 1, 1, 0, -1, -1, -1}},
		{"unbalanced zen 2", [10]float64{1, 2, 2, 2, 2, 1, 0, 0, -2, -1}},
		{"uston apc", [10]float64{1, 2, 2, 3, 2, 2, 1, -1, -3, 0}},
		{"uston ss", [10]float64{2, 2, 2, 3, 2, 1, 0, -1, -2, -2}},
		{"wong halves", [10]float64{0.5, 1, 1, 1.5, 1, 0.5, 0, -0.5, -1, -1}},
		{"zen count", [10]float64{1, 1, 2, 2, 2, 1, 0, 0, -2, -1}},
	}
	require.Len(t, tests, len(Systems()), "every system needs a weight row")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LookupSystem(tt.name)
			require.NoError(t, err)

			for i, r := range ranks {
				assert.Equal(t, tt.want[i], s.Weight(r), r.String())
			}
			for _, face := range []deck.Rank{deck.Jack, deck.Queen, deck.King} {
				assert.Equal(t, s.Weight(deck.Ten), s.Weight(face), face.String())
			}
		})
	}
}

func TestSystemBalance(t *testing.T) {
	balanced := []string{"hi-lo", "hi-lo opt i", "hi-lo opt ii", "omega ii", "wong halves", "zen count", "uston apc", "silver fox", "mentor"}
	for _, name := range balanced {
		s, err := LookupSystem(name)
		require.NoError(t, err)
		assert.True(t, s.Balanced(), name)
	}

	unbalanced := []string{"k-o", "rkeo", "unbalanced zen 2", "uston ss"}
	for _, name := range unbalanced {
		s, err := LookupSystem(name)
		require.NoError(t, err)
		assert.False(t, s.Balanced(), name)
	}
}

func TestCounter(t *testing.T) {
	hilo, err := LookupSystem("hi-lo")
	require.NoError(t, err)

	c := NewCounter(hilo)
	for _, card := range deck.MustParseCards("2s 5h 6d Kc Ah 7s") {
		c.Update(card)
	}
	assert.Equal(t, 1.0, c.Running())

	c.SetRunning(6)
	assert.Equal(t, 3.0, c.TrueCount(2))
	assert.Equal(t, 6.0, c.TrueCount(0.5), "below one deck the running count is used")
	assert.Equal(t, 6.0, c.TrueCount(0))

	c.Reset()
	assert.Equal(t, 0.0, c.Running())
}

func TestCounterFullShoeBalanced(t *testing.T) {
	hilo, err := LookupSystem("hi-lo")
	require.NoError(t, err)

	c := NewCounter(hilo)
	for _, suit := range deck.Suits {
		for r := deck.Two; r <= deck.Ace; r++ {
			c.Update(deck.NewCard(suit, r))
		}
	}
	assert.Equal(t, 0.0, c.Running())
}

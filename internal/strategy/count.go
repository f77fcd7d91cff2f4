package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lox/bjsim/internal/deck"
)

// ErrUnknownSystem is returned for counting system names that are not registered
var ErrUnknownSystem = errors.New("unknown counting system")

// System is a card counting system: one signed weight per rank, Two through Ace.
type System struct {
	Name    string
	Weights [deck.NumRanks]float64
}

// Weight returns the count increment for a rank
func (s System) Weight(r deck.Rank) float64 {
	i := r.Index()
	if i < 0 || i >= deck.NumRanks {
		return 0
	}
	return s.Weights[i]
}

// Balanced reports whether a full deck sums to zero under this system
func (s System) Balanced() bool {
	var sum float64
	for _, w := range s.Weights {
		sum += w * 4
	}
	return sum == 0
}

// weights expands the ten distinct blackjack values (2..9, ten-cards, Ace)
// into a 13 entry rank table.
func weights(two, three, four, five, six, seven, eight, nine, ten, ace float64) [deck.NumRanks]float64 {
	return [deck.NumRanks]float64{two, three, four, five, six, seven, eight, nine, ten, ten, ten, ten, ace}
}

var systems = map[string]System{
	"hi-lo":               {Weights: weights(1, 1, 1, 1, 1, 0, 0, 0, -1, -1)},
	"hi-lo opt i":         {Weights: weights(0, 1, 1, 1, 1, 0, 0, 0, -1, 0)},
	"hi-lo opt ii":        {Weights: weights(1, 1, 2, 2, 1, 1, 0, 0, -2, 0)},
	"k-o":                 {Weights: weights(1, 1, 1, 1, 1, 1, 0, 0, -1, -1)},
	"mentor":              {Weights: weights(1, 2, 2, 2, 2, 1, 0, -1, -2, -1)},
	"omega ii":            {Weights: weights(1, 1, 2, 2, 2, 1, 0, -1, -2, 0)},
	"rkeo":                {Weights: weights(1, 1, 1, 1, 1, 1, 0, 0, -1, -1)},
	"reverse point count": {Weights: weights(1, 2, 2, 2, 2, 1, 0, 0, -2, -2)},
	"reverse 14 count":    {Weights: weights(2, 2, 3, 4, 2, 1, 0, -2, -3, 0)},
	"reverse rapc":        {Weights: weights(2, 3, 3, 4, 3, 2, 0, -1, -3, -4)},
	"silver fox":          {Weights: weights(1, 1, 1, 1, 1, 1, 0, -1, -1, -1)},
	"unbalanced zen 2":    {Weights: weights(1, 2, 2, 2, 2, 1, 0, 0, -2, -1)},
	"uston apc":           {Weights: weights(1, 2, 2, 3, 2, 2, 1, -1, -3, 0)},
	"uston ss":            {Weights: weights(2, 2, 2, 3, 2, 1, 0, -1, -2, -2)},
	"wong halves":         {Weights: weights(0.5, 1, 1, 1.5, 1, 0.5, 0, -0.5, -1, -1)},
	"zen count":           {Weights: weights(1, 1, 2, 2, 2, 1, 0, 0, -2, -1)},
}

var systemAliases = map[string]string{
	"hilo":      "hi-lo",
	"hi-opt i":  "hi-lo opt i",
	"hi-opt ii": "hi-lo opt ii",
	"ko":        "k-o",
	"knockout":  "k-o",
	"omega 2":   "omega ii",
	"rpc":       "reverse point count",
	"rapc":      "reverse rapc",
	"zen":       "zen count",
	"halves":    "wong halves",
}

func init() {
	for name, s := range systems {
		s.Name = name
		systems[name] = s
	}
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", " ")
	return strings.Join(strings.Fields(name), " ")
}

// LookupSystem finds a counting system by name, ignoring case and spacing
func LookupSystem(name string) (System, error) {
	key := normalizeName(name)
	if alias, ok := systemAliases[key]; ok {
		key = alias
	}
	s, ok := systems[key]
	if !ok {
		return System{}, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
	return s, nil
}

// Systems returns every registered counting system sorted by name
func Systems() []System {
	out := make([]System, 0, len(systems))
	for _, s := range systems {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Counter keeps the running count for one shoe
type Counter struct {
	system  System
	running float64
}

// NewCounter returns a zeroed counter for the given system
func NewCounter(system System) *Counter {
	return &Counter{system: system}
}

// System returns the counter's counting system
func (c *Counter) System() System {
	return c.system
}

// Update adds a revealed card to the running count
func (c *Counter) Update(card deck.Card) {
	c.running += c.system.Weight(card.Rank)
}

// Running returns the current running count
func (c *Counter) Running() float64 {
	return c.running
}

// SetRunning overrides the running count
func (c *Counter) SetRunning(v float64) {
	c.running = v
}

// Reset zeroes the running count; called exactly when the shoe is reshuffled
func (c *Counter) Reset() {
	c.running = 0
}

// TrueCount normalises the running count by the decks left. Below one deck
// the running count is returned unchanged.
func (c *Counter) TrueCount(decksRemaining float64) float64 {
	if decksRemaining < 1 {
		return c.running
	}
	return c.running / decksRemaining
}

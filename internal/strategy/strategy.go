// Package strategy implements card counting, bet sizing and chart driven
// playing decisions.
package strategy

import (
	"fmt"

	"github.com/lox/bjsim/internal/deck"
)

// Config selects a counting player's strategy from a Tables document
type Config struct {
	BaseBet float64
	// System is the counting system name, e.g. "hi-lo"
	System string
	// Strategy names the chart set. A strategy with one chart per count
	// bucket plays count-indexed deviations.
	Strategy string
	// Spread names the bet spread; empty bets flat.
	Spread string
	// InsuranceThreshold enables insurance at or above this true count.
	// Nil never insures.
	InsuranceThreshold *float64
}

// Strategy is a counting player: running count, bet sizing and chart lookup
type Strategy struct {
	baseBet   float64
	counter   *Counter
	charts    []Chart
	spread    Spread
	insurance *float64
}

// New builds a Strategy. Unknown names and malformed tables fail here,
// before any hand is played.
func New(cfg Config, tables *Tables) (*Strategy, error) {
	if cfg.BaseBet <= 0 {
		return nil, fmt.Errorf("%w: base bet must be positive, got %g", ErrInvalidTables, cfg.BaseBet)
	}
	if tables == nil {
		return nil, fmt.Errorf("%w: no tables loaded", ErrInvalidTables)
	}

	system, err := LookupSystem(cfg.System)
	if err != nil {
		return nil, err
	}

	charts, err := tables.Strategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	var spread Spread
	if cfg.Spread != "" {
		spread, err = tables.Spread(cfg.Spread)
		if err != nil {
			return nil, err
		}
	}

	return &Strategy{
		baseBet:   cfg.BaseBet,
		counter:   NewCounter(system),
		charts:    charts,
		spread:    spread,
		insurance: cfg.InsuranceThreshold,
	}, nil
}

// BaseBet returns the unit bet
func (s *Strategy) BaseBet() float64 {
	return s.baseBet
}

// Counter exposes the running count
func (s *Strategy) Counter() *Counter {
	return s.counter
}

// Deviations reports whether the strategy selects charts by count
func (s *Strategy) Deviations() bool {
	return len(s.charts) == NumBuckets
}

// UpdateCount adds a revealed card to the running count
func (s *Strategy) UpdateCount(card deck.Card) {
	s.counter.Update(card)
}

// ResetCount zeroes the running count after a reshuffle
func (s *Strategy) ResetCount() {
	s.counter.Reset()
}

// TrueCount returns the running count per remaining deck
func (s *Strategy) TrueCount(decksRemaining float64) float64 {
	return s.counter.TrueCount(decksRemaining)
}

// Bet sizes the next wager from the spread
func (s *Strategy) Bet(decksRemaining float64) float64 {
	if len(s.spread) == 0 {
		return s.baseBet
	}
	return s.baseBet * s.spread.Multiplier(s.TrueCount(decksRemaining))
}

// WantsInsurance reports whether the count justifies insuring against an Ace
func (s *Strategy) WantsInsurance(decksRemaining float64) bool {
	return s.insurance != nil && s.TrueCount(decksRemaining) >= *s.insurance
}

// Chart returns the chart in play for the given decks remaining
func (s *Strategy) Chart(decksRemaining float64) *Chart {
	if s.Deviations() {
		return &s.charts[Bucket(s.TrueCount(decksRemaining))-MinBucket]
	}
	return &s.charts[0]
}

// Decide looks up the chart action for a hand. A cell without a known
// action yields Stand together with an ErrUnknownAction error so the caller
// can surface the malformed chart and keep playing.
func (s *Strategy) Decide(cards []deck.Card, upcard deck.Card, decksRemaining float64) (Action, error) {
	chart := s.Chart(decksRemaining)
	t, row, col := Coordinates(cards, upcard)
	a := chart.Cell(t, row, col)
	if a == Invalid {
		return Stand, fmt.Errorf("%w: %s row %d column %d", ErrUnknownAction, t, row, col)
	}
	return a, nil
}

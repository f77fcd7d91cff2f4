// Package simulator resolves blackjack rounds and runs a counting player
// through a shoe for a fixed number of hands.
package simulator

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/randutil"
	"github.com/lox/bjsim/internal/rules"
	"github.com/lox/bjsim/internal/statistics"
	"github.com/lox/bjsim/internal/strategy"
)

// Source deals cards. Resolving a round needs nothing more.
type Source interface {
	Deal() deck.Card
	DecksRemaining() float64
}

// Shoe is a Source that can report penetration and be rebuilt
type Shoe interface {
	Source
	Remaining() float64
	Reshuffle()
}

// rebuildNotifier is implemented by shoes that can rebuild themselves
// mid-round when they run dry
type rebuildNotifier interface {
	OnRebuild(fn func())
}

// Config holds configuration for running simulations
type Config struct {
	Rules  rules.Rules
	Player strategy.Config
	Tables *strategy.Tables
	Hands  int
	// Bankroll is the starting bankroll. When positive the run stops as soon
	// as the bankroll drops below zero.
	Bankroll float64
	Seed     int64
	// Shoe overrides the shuffled shoe built from Rules and Seed
	Shoe   Shoe
	Logger *log.Logger
}

// Result summarises one simulation run
type Result struct {
	HandsPlayed           int
	StartingBankroll      float64
	FinalBankroll         float64
	BankrollHistory       []float64
	AmountBet             float64
	AvgProfitPerHand      float64
	HouseAdvantagePercent float64
	Ruined                bool
	Seed                  int64
	Stats                 *statistics.Statistics
}

// Profit returns the bankroll change over the run
func (r *Result) Profit() float64 {
	return r.FinalBankroll - r.StartingBankroll
}

// Simulator plays one independent run. It owns its shoe, strategy and
// bankroll and is not safe for concurrent use.
type Simulator struct {
	config   Config
	rules    rules.Rules
	strategy *strategy.Strategy
	shoe     Shoe
	logger   *log.Logger
	bankroll float64
}

// New validates the configuration and builds a simulator ready to run
func New(config Config) (*Simulator, error) {
	if err := config.Rules.Validate(); err != nil {
		return nil, err
	}
	if config.Hands < 0 {
		return nil, fmt.Errorf("hands cannot be negative, got %d", config.Hands)
	}

	strat, err := strategy.New(config.Player, config.Tables)
	if err != nil {
		return nil, fmt.Errorf("failed to build strategy: %w", err)
	}

	shoe := config.Shoe
	if shoe == nil {
		shoe = deck.NewShoe(config.Rules.Decks, randutil.New(config.Seed))
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sim := &Simulator{
		config:   config,
		rules:    config.Rules,
		strategy: strat,
		shoe:     shoe,
		logger:   logger,
		bankroll: config.Bankroll,
	}
	if n, ok := shoe.(rebuildNotifier); ok {
		n.OnRebuild(sim.shoeRebuilt)
	}
	return sim, nil
}

// shoeRebuilt starts a fresh count when the shoe runs dry mid-round
func (s *Simulator) shoeRebuilt() {
	s.strategy.ResetCount()
	s.logger.Debug("Shoe ran out mid-round, rebuilt")
}

// Strategy exposes the player's strategy and running count
func (s *Simulator) Strategy() *strategy.Strategy {
	return s.strategy
}

// Bankroll returns the current bankroll
func (s *Simulator) Bankroll() float64 {
	return s.bankroll
}

// Run plays the configured number of hands. Cancellation is checked between
// hands; a cancelled run returns what it played so far along with ctx.Err().
func (s *Simulator) Run(ctx context.Context) (Result, error) {
	stats := &statistics.Statistics{}
	result := Result{
		StartingBankroll: s.config.Bankroll,
		BankrollHistory:  make([]float64, 0, s.config.Hands),
		Seed:             s.config.Seed,
		Stats:            stats,
	}

	var runErr error
	for hand := 0; hand < s.config.Hands; hand++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		if s.shoe.Remaining() < s.rules.Penetration {
			s.shoe.Reshuffle()
			s.strategy.ResetCount()
			s.logger.Debug("Reshuffled shoe", "hand", hand+1)
		}

		round := s.PlayRound()
		s.bankroll += round.Net
		result.HandsPlayed++
		result.AmountBet += round.Wagered
		result.BankrollHistory = append(result.BankrollHistory, s.bankroll)
		stats.Add(round.Result())

		if s.config.Bankroll > 0 && s.bankroll < 0 {
			result.Ruined = true
			s.logger.Debug("Bankroll exhausted", "hand", hand+1, "bankroll", s.bankroll)
			break
		}
	}

	result.FinalBankroll = s.bankroll
	profit := result.Profit()
	if result.HandsPlayed > 0 {
		result.AvgProfitPerHand = profit / float64(result.HandsPlayed)
	}
	if result.AmountBet > 0 {
		result.HouseAdvantagePercent = (1 - (profit+result.AmountBet)/result.AmountBet) * 100
	}

	if err := stats.Validate(); err != nil {
		return result, fmt.Errorf("statistics validation failed: %w", err)
	}
	if stats.InvalidActions > 0 {
		s.logger.Warn("Charts produced invalid actions", "count", stats.InvalidActions)
	}

	return result, runErr
}

// RunSimulation is a convenience function that builds a simulator and runs it
func RunSimulation(ctx context.Context, config Config) (Result, error) {
	sim, err := New(config)
	if err != nil {
		return Result{}, err
	}
	return sim.Run(ctx)
}

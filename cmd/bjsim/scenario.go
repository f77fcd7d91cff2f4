package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/lox/bjsim/cmd/bjsim/shared"
	"github.com/lox/bjsim/internal/analysis"
	"github.com/lox/bjsim/internal/config"
	"github.com/lox/bjsim/internal/randutil"
	"github.com/lox/bjsim/internal/strategy"
)

// ScenarioFlags select a scenario file and override parts of it
type ScenarioFlags struct {
	Config   string   `short:"c" default:"bjsim.hcl" help:"Scenario file (defaults are used when it does not exist)"`
	Tables   string   `help:"Strategy tables file (overrides the scenario)"`
	Hands    *int     `help:"Hands per run"`
	Runs     *int     `help:"Number of independent runs"`
	Seed     *int64   `help:"Batch seed (0 for random)"`
	Workers  *int     `help:"Parallel workers (0 = one per CPU)"`
	Bankroll *float64 `help:"Starting bankroll (0 = unlimited)"`
	Strategy string   `help:"Strategy name (overrides the scenario)"`
	Spread   string   `help:"Spread name (overrides the scenario)"`
	System   string   `help:"Counting system (overrides the scenario)"`
	Debug    bool     `help:"Enable debug logging"`
	Trace    bool     `help:"Log every round from the engine"`

	// applied when neither the scenario nor the flags set a bankroll
	defaultBankroll float64 `kong:"-"`
	// rejects scenarios that end with no positive bankroll
	needsBankroll bool `kong:"-"`
}

func (f *ScenarioFlags) load() (*config.Scenario, *strategy.Tables, error) {
	s, err := config.LoadScenario(f.Config)
	if err != nil {
		return nil, nil, err
	}

	if f.Tables != "" {
		s.Tables = f.Tables
	}
	if f.Hands != nil {
		s.Hands = *f.Hands
	}
	if f.Runs != nil {
		s.Runs = *f.Runs
	}
	if f.Seed != nil {
		s.Seed = *f.Seed
	}
	if f.Workers != nil {
		s.Workers = *f.Workers
	}
	if f.Bankroll != nil {
		s.Bankroll = *f.Bankroll
	} else if s.Bankroll == 0 {
		s.Bankroll = f.defaultBankroll
	}
	if f.Strategy != "" {
		s.Player.Strategy = f.Strategy
	}
	if f.Spread != "" {
		s.Player.Spread = f.Spread
	}
	if f.System != "" {
		s.Player.CountingSystem = f.System
	}
	s.Seed = randutil.Seed(s.Seed)

	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	if f.needsBankroll && s.Bankroll <= 0 {
		return nil, nil, fmt.Errorf("%w: a positive bankroll is required, got %g", config.ErrInvalidScenario, s.Bankroll)
	}
	tables, err := s.LoadTables()
	if err != nil {
		return nil, nil, err
	}
	return s, tables, nil
}

// runBatch loads the scenario and runs it, returning the batch even when it
// was interrupted so partial results can still be reported.
func (f *ScenarioFlags) runBatch() (*config.Scenario, *analysis.Batch, zerolog.Logger, error) {
	logger := shared.SetupLogger(f.Debug)

	s, tables, err := f.load()
	if err != nil {
		return nil, nil, logger, err
	}

	ctx, cancel := shared.SetupSignalHandlerWithLogger(logger)
	defer cancel()

	logger.Info().
		Str("scenario", f.Config).
		Str("system", s.Player.CountingSystem).
		Str("strategy", s.Player.Strategy).
		Str("spread", spreadName(s.Player.Spread)).
		Int("decks", s.Rules.Decks).
		Msg("Loaded scenario")

	batch, err := analysis.RunBatch(ctx, analysis.BatchConfig{
		Simulation: s.SimulationConfig(tables, shared.SetupEngineLogger(os.Stderr, f.Trace)),
		Runs:       s.Runs,
		Seed:       s.Seed,
		Workers:    s.Workers,
		Logger:     logger,
	})
	if errors.Is(err, context.Canceled) && batch != nil && len(batch.Results) > 0 {
		logger.Warn().Int("runs", len(batch.Results)).Msg("Reporting partial batch")
		return s, batch, logger, nil
	}
	if err != nil {
		return nil, nil, logger, fmt.Errorf("simulation failed: %w", err)
	}
	return s, batch, logger, nil
}

func spreadName(name string) string {
	if name == "" {
		return "flat"
	}
	return name
}

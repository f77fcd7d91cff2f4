// Package config loads HCL scenario files describing a simulation: table
// rules, the counting player and batch settings.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/bjsim/internal/rules"
	"github.com/lox/bjsim/internal/simulator"
	"github.com/lox/bjsim/internal/strategy"
)

// ErrInvalidScenario is wrapped by every scenario validation failure
var ErrInvalidScenario = errors.New("invalid scenario")

//go:embed default.hcl
var defaultScenarioHCL []byte

// Template returns a commented scenario file holding the default settings
func Template() []byte {
	return defaultScenarioHCL
}

// Scenario is the complete settings of a simulation batch
type Scenario struct {
	Hands    int     `hcl:"hands,optional"`
	Runs     int     `hcl:"runs,optional"`
	Seed     int64   `hcl:"seed,optional"`
	Bankroll float64 `hcl:"bankroll,optional"`
	Workers  int     `hcl:"workers,optional"`
	Tables   string  `hcl:"tables,optional"`

	Rules  *RulesSettings  `hcl:"rules,block"`
	Player *PlayerSettings `hcl:"player,block"`

	// directory of the scenario file, used to resolve a relative tables path
	dir string
}

// RulesSettings mirrors rules.Rules. Pointer fields are optional and fall
// back to rules.Default.
type RulesSettings struct {
	Decks            int      `hcl:"decks,optional"`
	DealerHitsSoft17 *bool    `hcl:"dealer_hits_soft_17,optional"`
	BlackjackPayout  float64  `hcl:"blackjack_payout,optional"`
	Surrender        *bool    `hcl:"surrender,optional"`
	DoubleAfterSplit *bool    `hcl:"double_after_split,optional"`
	Penetration      *float64 `hcl:"penetration,optional"`
	MaxSplitHands    int      `hcl:"max_split_hands,optional"`
}

// PlayerSettings selects the counting player. An empty spread bets flat.
type PlayerSettings struct {
	BaseBet            float64  `hcl:"base_bet,optional"`
	CountingSystem     string   `hcl:"counting_system,optional"`
	Strategy           string   `hcl:"strategy,optional"`
	Spread             string   `hcl:"spread,optional"`
	InsuranceThreshold *float64 `hcl:"insurance_threshold,optional"`
}

const (
	defaultHands          = 100_000
	defaultRuns           = 1
	defaultBaseBet        = 15
	defaultCountingSystem = "hi-lo"
	defaultStrategy       = "basic"
)

// DefaultScenario returns the scenario used when no file is given
func DefaultScenario() *Scenario {
	s := &Scenario{}
	s.applyDefaults()
	return s
}

// LoadScenario loads a scenario from an HCL file. A missing file yields the
// default scenario.
func LoadScenario(filename string) (*Scenario, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultScenario(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := ParseScenario(src, filename)
	if err != nil {
		return nil, err
	}
	s.dir = filepath.Dir(filename)
	return s, nil
}

// ParseScenario decodes scenario HCL and fills in defaults for anything left out
func ParseScenario(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var s Scenario
	diags = gohcl.DecodeBody(file.Body, nil, &s)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	s.applyDefaults()
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	if s.Hands == 0 {
		s.Hands = defaultHands
	}
	if s.Runs == 0 {
		s.Runs = defaultRuns
	}

	def := rules.Default()
	if s.Rules == nil {
		s.Rules = &RulesSettings{}
	}
	r := s.Rules
	if r.Decks == 0 {
		r.Decks = def.Decks
	}
	if r.DealerHitsSoft17 == nil {
		r.DealerHitsSoft17 = &def.DealerHitsSoft17
	}
	if r.BlackjackPayout == 0 {
		r.BlackjackPayout = def.BlackjackPayout
	}
	if r.Surrender == nil {
		r.Surrender = &def.SurrenderAllowed
	}
	if r.DoubleAfterSplit == nil {
		r.DoubleAfterSplit = &def.DoubleAfterSplit
	}
	if r.Penetration == nil {
		r.Penetration = &def.Penetration
	}

	if s.Player == nil {
		s.Player = &PlayerSettings{}
	}
	p := s.Player
	if p.BaseBet == 0 {
		p.BaseBet = defaultBaseBet
	}
	if p.CountingSystem == "" {
		p.CountingSystem = defaultCountingSystem
	}
	if p.Strategy == "" {
		p.Strategy = defaultStrategy
	}
}

// Validate checks the scenario without loading its tables
func (s *Scenario) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("%w: hands must be positive, got %d", ErrInvalidScenario, s.Hands)
	}
	if s.Runs <= 0 {
		return fmt.Errorf("%w: runs must be positive, got %d", ErrInvalidScenario, s.Runs)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidScenario, s.Workers)
	}
	if s.Bankroll < 0 {
		return fmt.Errorf("%w: bankroll cannot be negative, got %g", ErrInvalidScenario, s.Bankroll)
	}
	if err := s.RulesConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if s.Player.BaseBet <= 0 {
		return fmt.Errorf("%w: base bet must be positive, got %g", ErrInvalidScenario, s.Player.BaseBet)
	}
	if _, err := strategy.LookupSystem(s.Player.CountingSystem); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return nil
}

// RulesConfig converts the rules block into engine rules
func (s *Scenario) RulesConfig() rules.Rules {
	r := s.Rules
	return rules.Rules{
		Decks:            r.Decks,
		DealerHitsSoft17: *r.DealerHitsSoft17,
		BlackjackPayout:  r.BlackjackPayout,
		SurrenderAllowed: *r.Surrender,
		DoubleAfterSplit: *r.DoubleAfterSplit,
		Penetration:      *r.Penetration,
		MaxSplitHands:    r.MaxSplitHands,
	}
}

// PlayerConfig converts the player block into a strategy configuration
func (s *Scenario) PlayerConfig() strategy.Config {
	p := s.Player
	return strategy.Config{
		BaseBet:            p.BaseBet,
		System:             p.CountingSystem,
		Strategy:           p.Strategy,
		Spread:             p.Spread,
		InsuranceThreshold: p.InsuranceThreshold,
	}
}

// TablesPath returns the tables file to load, or "" for the built-in tables
func (s *Scenario) TablesPath() string {
	if s.Tables == "" || filepath.IsAbs(s.Tables) || s.dir == "" {
		return s.Tables
	}
	return filepath.Join(s.dir, s.Tables)
}

// LoadTables loads the strategy tables the scenario refers to and checks
// that its strategy and spread exist in them.
func (s *Scenario) LoadTables() (*strategy.Tables, error) {
	var (
		tables *strategy.Tables
		err    error
	)
	if path := s.TablesPath(); path != "" {
		tables, err = strategy.LoadTables(path)
	} else {
		tables, err = strategy.DefaultTables()
	}
	if err != nil {
		return nil, err
	}

	if _, err := tables.Strategy(s.Player.Strategy); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if s.Player.Spread != "" {
		if _, err := tables.Spread(s.Player.Spread); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
	}
	return tables, nil
}

// SimulationConfig builds the per-run engine configuration
func (s *Scenario) SimulationConfig(tables *strategy.Tables, logger *log.Logger) simulator.Config {
	return simulator.Config{
		Rules:    s.RulesConfig(),
		Player:   s.PlayerConfig(),
		Tables:   tables,
		Hands:    s.Hands,
		Bankroll: s.Bankroll,
		Seed:     s.Seed,
		Logger:   logger,
	}
}

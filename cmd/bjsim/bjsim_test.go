package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjsim/internal/config"
	"github.com/lox/bjsim/internal/fileutil"
	"github.com/lox/bjsim/internal/statistics"
	"github.com/lox/bjsim/internal/strategy"
)

func TestSampleCurve(t *testing.T) {
	history := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.Nil(t, sampleCurve(nil, 5))
	assert.Nil(t, sampleCurve(history, 0))

	assert.Equal(t, []curvePoint{{5, 5}, {10, 10}}, sampleCurve(history, 2))
	assert.Len(t, sampleCurve(history, 50), len(history))
	assert.Equal(t, curvePoint{10, 10}, sampleCurve(history, 3)[2])
}

func TestScenarioFlagsOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
hands = 1000
runs  = 2
seed  = 5
player {
  base_bet = 10
}
`), 0o644))

	hands, workers := 250, 3
	flags := ScenarioFlags{
		Config:  path,
		Hands:   &hands,
		Workers: &workers,
		Spread:  "basic",
		System:  "ko",
	}
	flags.defaultBankroll = 500

	s, tables, err := flags.load()
	require.NoError(t, err)
	require.NotNil(t, tables)

	assert.Equal(t, 250, s.Hands)
	assert.Equal(t, 2, s.Runs)
	assert.Equal(t, int64(5), s.Seed)
	assert.Equal(t, 3, s.Workers)
	assert.Equal(t, 500.0, s.Bankroll)
	assert.Equal(t, "basic", s.Player.Spread)
	assert.Equal(t, "ko", s.Player.CountingSystem)
	assert.Equal(t, 10.0, s.Player.BaseBet)
}

func TestScenarioFlagsBankrollDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.hcl")

	flags := ScenarioFlags{Config: missing, defaultBankroll: 1000, needsBankroll: true}
	s, _, err := flags.load()
	require.NoError(t, err)
	assert.Equal(t, 1000.0, s.Bankroll)

	explicit := 250.0
	flags = ScenarioFlags{Config: missing, Bankroll: &explicit, defaultBankroll: 1000, needsBankroll: true}
	s, _, err = flags.load()
	require.NoError(t, err)
	assert.Equal(t, 250.0, s.Bankroll)

	zero := 0.0
	flags = ScenarioFlags{Config: missing, Bankroll: &zero, defaultBankroll: 1000, needsBankroll: true}
	_, _, err = flags.load()
	require.ErrorIs(t, err, config.ErrInvalidScenario)

	flags = ScenarioFlags{Config: missing, Bankroll: &zero, defaultBankroll: 1000}
	s, _, err = flags.load()
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Bankroll)
}

func TestScenarioFlagsRandomSeed(t *testing.T) {
	flags := ScenarioFlags{Config: filepath.Join(t.TempDir(), "missing.hcl")}
	s, _, err := flags.load()
	require.NoError(t, err)
	assert.NotZero(t, s.Seed)
}

func TestScenarioFlagsInvalid(t *testing.T) {
	runs := 0
	flags := ScenarioFlags{Config: filepath.Join(t.TempDir(), "missing.hcl"), Runs: &runs, Strategy: "nope"}
	_, _, err := flags.load()
	assert.Error(t, err)

	flags = ScenarioFlags{Config: filepath.Join(t.TempDir(), "missing.hcl"), Strategy: "nope"}
	_, _, err = flags.load()
	assert.Error(t, err)
}

func TestRenderSystems(t *testing.T) {
	out := renderSystems(strategy.Systems())
	for _, s := range strategy.Systems() {
		assert.Contains(t, out, s.Name)
	}
	assert.Equal(t, len(strategy.Systems())+1, strings.Count(out, "\n"))
}

func TestRenderChart(t *testing.T) {
	tables, err := strategy.DefaultTables()
	require.NoError(t, err)
	charts, err := tables.Strategy("basic")
	require.NoError(t, err)

	out := renderChart("basic", 0, &charts[0])
	for _, label := range []string{"hard", "soft", "pairs", "17+", "A8+", "AA", "RH", "DS", "PH"} {
		assert.Contains(t, out, label)
	}
}

func TestRoundRows(t *testing.T) {
	assert.Nil(t, roundRows(&statistics.Statistics{}))

	r := &statistics.Statistics{}
	r.Add(statistics.RoundResult{Net: 22.5, Wagered: 15, Hands: 1, Blackjack: true})
	r.Add(statistics.RoundResult{Net: -15, Wagered: 15, Hands: 1, Busts: 1})
	out := strings.Join(roundRows(r), "\n")
	for _, label := range []string{"Std dev per round", "Blackjacks", "Busts", "Surrenders"} {
		assert.Contains(t, out, label)
	}
	assert.NotContains(t, out, "Insurance")

	r.Add(statistics.RoundResult{Net: 0, Wagered: 15, Hands: 1, DealerBlackjack: true, InsuranceTaken: true, InsuranceNet: 15})
	assert.Contains(t, strings.Join(roundRows(r), "\n"), "Insurance")
}

func TestWriteStarterFiles(t *testing.T) {
	dir := t.TempDir()

	written, err := writeStarterFiles(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, tablesFile), filepath.Join(dir, scenarioFile)}, written)

	s, err := config.LoadScenario(filepath.Join(dir, scenarioFile))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, tablesFile), s.TablesPath())

	tables, err := s.LoadTables()
	require.NoError(t, err)
	assert.Contains(t, tables.StrategyNames(), "deviations")

	written, err = writeStarterFiles(dir, false)
	require.ErrorIs(t, err, fileutil.ErrExists)
	assert.Empty(t, written)

	_, err = writeStarterFiles(dir, true)
	require.NoError(t, err)
}

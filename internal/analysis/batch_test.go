package analysis

import (
	"context"
	"io"
	"testing"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjsim/internal/rules"
	"github.com/lox/bjsim/internal/simulator"
	"github.com/lox/bjsim/internal/strategy"
)

func testBatchConfig(t *testing.T, runs, workers int) BatchConfig {
	t.Helper()
	tables, err := strategy.DefaultTables()
	require.NoError(t, err)

	return BatchConfig{
		Simulation: simulator.Config{
			Rules:  rules.Default(),
			Player: strategy.Config{BaseBet: 10, System: "hi-lo", Strategy: "basic", Spread: "basic"},
			Tables: tables,
			Hands:  500,
		},
		Runs:    runs,
		Seed:    1234,
		Workers: workers,
		Logger:  zerolog.New(io.Discard),
		Clock:   quartz.NewMock(t),
	}
}

func TestRunBatch(t *testing.T) {
	batch, err := RunBatch(context.Background(), testBatchConfig(t, 6, 3))
	require.NoError(t, err)

	require.Len(t, batch.Results, 6)
	assert.Len(t, batch.ID, 8)
	assert.Equal(t, int64(1234), batch.Seed)
	assert.Zero(t, batch.Elapsed, "mock clock never advances")

	seen := map[int64]bool{}
	for _, r := range batch.Results {
		assert.Equal(t, 500, r.HandsPlayed)
		assert.False(t, seen[r.Seed], "runs should have distinct seeds")
		seen[r.Seed] = true
	}
}

func TestRunBatchReproducibleAcrossWorkers(t *testing.T) {
	serial, err := RunBatch(context.Background(), testBatchConfig(t, 4, 1))
	require.NoError(t, err)
	parallel, err := RunBatch(context.Background(), testBatchConfig(t, 4, 4))
	require.NoError(t, err)

	require.Len(t, parallel.Results, len(serial.Results))
	for i := range serial.Results {
		assert.Equal(t, serial.Results[i].Seed, parallel.Results[i].Seed)
		assert.Equal(t, serial.Results[i].FinalBankroll, parallel.Results[i].FinalBankroll)
		assert.Equal(t, serial.Results[i].BankrollHistory, parallel.Results[i].BankrollHistory)
	}
	assert.NotEqual(t, serial.ID, parallel.ID)
}

func TestRunBatchErrors(t *testing.T) {
	_, err := RunBatch(context.Background(), testBatchConfig(t, 0, 1))
	assert.Error(t, err)

	cfg := testBatchConfig(t, 2, 1)
	cfg.Simulation.Player.Strategy = "missing"
	_, err = RunBatch(context.Background(), cfg)
	assert.ErrorIs(t, err, strategy.ErrInvalidTables)
}

func TestRunBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch, err := RunBatch(ctx, testBatchConfig(t, 3, 2))
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, batch)
	assert.Empty(t, batch.Results)
}

func TestRunBatchFeedsAnalyze(t *testing.T) {
	cfg := testBatchConfig(t, 5, 2)
	cfg.Simulation.Bankroll = 500
	batch, err := RunBatch(context.Background(), cfg)
	require.NoError(t, err)

	s := Analyze(batch.Results, cfg.Simulation.Bankroll)
	assert.Equal(t, 5, s.Runs)
	assert.LessOrEqual(t, s.CI95Low, s.MeanProfit)
	assert.GreaterOrEqual(t, s.CI95High, s.MeanProfit)
	assert.GreaterOrEqual(t, s.RiskOfRuin, 0.0)
	assert.LessOrEqual(t, s.RiskOfRuin, 1.0)
	assert.Len(t, AverageHistory(batch.Results), minHistory(batch.Results))
}

func minHistory(results []simulator.Result) int {
	n := len(results[0].BankrollHistory)
	for _, r := range results {
		n = min(n, len(r.BankrollHistory))
	}
	return n
}

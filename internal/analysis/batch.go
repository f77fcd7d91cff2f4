package analysis

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/bjsim/internal/randutil"
	"github.com/lox/bjsim/internal/simulator"
)

// BatchConfig describes a set of independent runs sharing one scenario
type BatchConfig struct {
	// Simulation is the template for every run. Seed and Shoe are replaced
	// per run so no state is shared between workers.
	Simulation simulator.Config
	Runs       int
	Seed       int64
	Workers    int
	Logger     zerolog.Logger
	Clock      quartz.Clock
}

// Batch holds the results of a RunBatch call in run order
type Batch struct {
	ID      string
	Seed    int64
	Results []simulator.Result
	Elapsed time.Duration
}

// RunBatch executes the runs on a bounded worker pool. Run i is seeded with
// randutil.Derive(Seed, i), so a batch is reproducible whatever the worker
// count. On error the batch holds the runs that completed.
func RunBatch(ctx context.Context, cfg BatchConfig) (*Batch, error) {
	if cfg.Runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", cfg.Runs)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	batch := &Batch{
		ID:   uuid.NewString()[:8],
		Seed: cfg.Seed,
	}
	logger := cfg.Logger.With().Str("batch", batch.ID).Logger()

	logger.Info().
		Int("runs", cfg.Runs).
		Int("hands", cfg.Simulation.Hands).
		Int("workers", workers).
		Int64("seed", cfg.Seed).
		Msg("Starting batch")

	start := clock.Now()
	results := make([]simulator.Result, cfg.Runs)
	completed := make([]bool, cfg.Runs)
	var finished atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for run := 0; run < cfg.Runs; run++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			sc := cfg.Simulation
			sc.Seed = randutil.Derive(cfg.Seed, run)
			sc.Shoe = nil

			result, err := simulator.RunSimulation(gctx, sc)
			if err != nil {
				return fmt.Errorf("run %d: %w", run, err)
			}
			results[run] = result
			completed[run] = true

			done := finished.Add(1)
			logger.Debug().
				Int("run", run).
				Int64("done", done).
				Float64("final_bankroll", result.FinalBankroll).
				Dur("elapsed", clock.Since(start)).
				Msg("Run complete")
			return nil
		})
	}

	err := g.Wait()
	batch.Elapsed = clock.Since(start)
	for run, ok := range completed {
		if ok {
			batch.Results = append(batch.Results, results[run])
		}
	}

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		logger.Warn().Err(err).Int("completed", len(batch.Results)).Msg("Batch stopped early")
		return batch, err
	}

	logger.Info().
		Int("runs", len(batch.Results)).
		Dur("elapsed", batch.Elapsed).
		Msg("Batch complete")
	return batch, nil
}

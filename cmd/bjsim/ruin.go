package main

import (
	"fmt"

	"github.com/lox/bjsim/internal/analysis"
)

const defaultRuinBankroll = 1000

type RuinCmd struct {
	ScenarioFlags `embed:""`
	Checkpoints   int `default:"10" help:"Points of the averaged bankroll curve to print"`
}

func (c *RuinCmd) Run() error {
	c.defaultBankroll = defaultRuinBankroll
	c.needsBankroll = true

	s, batch, logger, err := c.runBatch()
	if err != nil {
		return err
	}

	summary := analysis.Analyze(batch.Results, s.Bankroll)
	logger.Debug().Float64("risk_of_ruin", summary.RiskOfRuin).Int("ruined", summary.Ruined).Msg("Analysis complete")

	curve := sampleCurve(analysis.AverageHistory(batch.Results), c.Checkpoints)
	fmt.Println(renderRuinReport(s, batch, summary, curve))
	return nil
}

// curvePoint is one sampled point of an averaged bankroll history
type curvePoint struct {
	Hand     int
	Bankroll float64
}

func sampleCurve(history []float64, points int) []curvePoint {
	if len(history) == 0 || points <= 0 {
		return nil
	}
	if points > len(history) {
		points = len(history)
	}

	out := make([]curvePoint, 0, points)
	for i := 1; i <= points; i++ {
		idx := i*len(history)/points - 1
		out = append(out, curvePoint{Hand: idx + 1, Bankroll: history[idx]})
	}
	return out
}

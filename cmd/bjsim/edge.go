package main

import (
	"fmt"

	"github.com/lox/bjsim/internal/analysis"
)

type EdgeCmd struct {
	ScenarioFlags `embed:""`
}

func (c *EdgeCmd) Run() error {
	s, batch, _, err := c.runBatch()
	if err != nil {
		return err
	}

	summary := analysis.Analyze(batch.Results, s.Bankroll)
	fmt.Println(renderEdgeReport(s, batch, summary))
	return nil
}

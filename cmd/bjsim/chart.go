package main

import (
	"fmt"

	"github.com/lox/bjsim/internal/strategy"
)

type ChartCmd struct {
	Strategy string `arg:"" optional:"" default:"basic" help:"Strategy to print"`
	Tables   string `help:"Strategy tables file (built-in tables when empty)"`
	Count    int    `help:"True count bucket for count-indexed strategies"`
}

func (c *ChartCmd) Run() error {
	tables, err := strategy.DefaultTables()
	if c.Tables != "" {
		tables, err = strategy.LoadTables(c.Tables)
	}
	if err != nil {
		return err
	}

	charts, err := tables.Strategy(c.Strategy)
	if err != nil {
		return err
	}

	bucket := strategy.Bucket(float64(c.Count))
	chart := &charts[0]
	if len(charts) == strategy.NumBuckets {
		chart = &charts[bucket-strategy.MinBucket]
	} else {
		bucket = 0
	}

	fmt.Print(renderChart(c.Strategy, bucket, chart))
	return nil
}

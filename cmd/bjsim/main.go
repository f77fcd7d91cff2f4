package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Edge    EdgeCmd          `cmd:"" help:"Estimate house edge and expected profit"`
	Ruin    RuinCmd          `cmd:"" help:"Estimate risk of ruin for a starting bankroll"`
	Systems SystemsCmd       `cmd:"" help:"List the available counting systems"`
	Chart   ChartCmd         `cmd:"" help:"Print a strategy chart"`
	Init    InitCmd          `cmd:"" help:"Write a starter scenario and tables file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bjsim"),
		kong.Description("Blackjack card counting simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

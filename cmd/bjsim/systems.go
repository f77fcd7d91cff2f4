package main

import (
	"fmt"
	"strings"

	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/strategy"
)

type SystemsCmd struct{}

var weightRanks = []deck.Rank{deck.Two, deck.Three, deck.Four, deck.Five, deck.Six, deck.Seven, deck.Eight, deck.Nine, deck.Ten, deck.Ace}

func (c *SystemsCmd) Run() error {
	fmt.Print(renderSystems(strategy.Systems()))
	return nil
}

func renderSystems(systems []strategy.System) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("system"))
	for _, r := range weightRanks {
		b.WriteString(labelStyle.Width(6).Render(r.String()))
	}
	b.WriteString(labelStyle.Width(10).Render("balanced"))
	b.WriteString("\n")

	for _, s := range systems {
		b.WriteString(valueStyle.Width(24).Render(s.Name))
		for _, r := range weightRanks {
			w := s.Weight(r)
			cell := valueStyle
			switch {
			case w > 0:
				cell = goodStyle
			case w < 0:
				cell = badStyle
			}
			b.WriteString(cell.Width(6).Render(fmt.Sprintf("%g", w)))
		}
		balanced := "no"
		if s.Balanced() {
			balanced = "yes"
		}
		b.WriteString(valueStyle.Width(10).Render(balanced))
		b.WriteString("\n")
	}
	return b.String()
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/bjsim/internal/analysis"
	"github.com/lox/bjsim/internal/config"
	"github.com/lox/bjsim/internal/statistics"
	"github.com/lox/bjsim/internal/strategy"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Width(24)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

// actionStyles colours chart cells by action family
var actionStyles = map[strategy.Action]lipgloss.Style{
	strategy.Hit:          lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
	strategy.Stand:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")),
	strategy.DoubleHit:    lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
	strategy.DoubleStand:  lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")),
	strategy.Split:        lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF")).Bold(true),
	strategy.SplitHit:     lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
	strategy.SurrenderHit: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func signed(v float64, format string) string {
	s := fmt.Sprintf(format, v)
	if v < 0 {
		return badStyle.Render(s)
	}
	return goodStyle.Render(s)
}

func scenarioRows(s *config.Scenario, batchID string) []string {
	r := s.RulesConfig()
	dealer := "S17"
	if r.DealerHitsSoft17 {
		dealer = "H17"
	}
	return []string{
		row("Batch", batchID),
		row("Seed", fmt.Sprintf("%d", s.Seed)),
		row("Table", fmt.Sprintf("%d decks, %s, pays %g, pen %.0f%%", r.Decks, dealer, r.BlackjackPayout, r.Penetration*100)),
		row("Player", fmt.Sprintf("%s / %s / %s, base bet %g", s.Player.CountingSystem, s.Player.Strategy, spreadName(s.Player.Spread), s.Player.BaseBet)),
	}
}

func renderEdgeReport(s *config.Scenario, batch *analysis.Batch, sum analysis.Summary) string {
	lines := []string{titleStyle.Render("House edge"), ""}
	lines = append(lines, scenarioRows(s, batch.ID)...)
	lines = append(lines, "",
		row("Runs", fmt.Sprintf("%d of %d", sum.Runs, s.Runs)),
		row("Hands", fmt.Sprintf("%d", sum.TotalHands)),
		row("Amount bet", fmt.Sprintf("%.2f", sum.TotalAmountBet)),
		row("House edge", signed(-sum.HouseEdgePercent, "%.3f%%")+valueStyle.Render(" player view")),
		row("Profit per hand", signed(sum.AvgProfitPerHand, "%.4f")),
		row("Mean profit per run", signed(sum.MeanProfit, "%.2f")),
		row("Std dev per run", fmt.Sprintf("%.2f", sum.StdDevProfit)),
		row("95% CI", fmt.Sprintf("[%.2f, %.2f]", sum.CI95Low, sum.CI95High)),
	)
	lines = append(lines, roundRows(&sum.Rounds)...)
	lines = append(lines, "", row("Elapsed", batch.Elapsed.Round(time.Millisecond).String()))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// roundRows describes the pooled per-round ledger
func roundRows(r *statistics.Statistics) []string {
	if r.Rounds == 0 {
		return nil
	}
	low, high := r.ConfidenceInterval95()
	rows := []string{
		"",
		row("Net per round", signed(r.Mean(), "%.4f")+valueStyle.Render(fmt.Sprintf(" ± %.4f", r.StdError()))),
		row("Std dev per round", fmt.Sprintf("%.4f", r.StdDev())),
		row("Round 95% CI", fmt.Sprintf("[%.4f, %.4f]", low, high)),
		row("Won / lost / pushed", fmt.Sprintf("%s / %s / %s", percent(r.WinRate()), percent(r.Rate(r.Losses)), percent(r.Rate(r.Pushes)))),
		row("Blackjacks", percent(r.Rate(r.Blackjacks))),
		row("Dealer blackjacks", percent(r.Rate(r.DealerBlackjacks))),
		row("Busts", percent(r.Rate(r.Busts))),
		row("Surrenders", percent(r.Rate(r.Surrenders))),
		row("Doubles / splits", fmt.Sprintf("%s / %s", percent(r.Rate(r.Doubles)), percent(r.Rate(r.Splits)))),
		row("Largest win / loss", fmt.Sprintf("%.2f / %.2f", r.MaxWin, r.MaxLoss)),
	}
	if r.InsuranceTaken > 0 {
		rows = append(rows, row("Insurance", fmt.Sprintf("%d taken, %s won, net ",
			r.InsuranceTaken, percent(float64(r.InsuranceWon)/float64(r.InsuranceTaken)))+signed(r.InsuranceNet, "%.2f")))
	}
	if r.InvalidActions > 0 {
		rows = append(rows, row("Invalid chart cells", badStyle.Render(fmt.Sprintf("%d", r.InvalidActions))))
	}
	return rows
}

func renderRuinReport(s *config.Scenario, batch *analysis.Batch, sum analysis.Summary, curve []curvePoint) string {
	lines := []string{titleStyle.Render("Risk of ruin"), ""}
	lines = append(lines, scenarioRows(s, batch.ID)...)

	risk := goodStyle.Render(fmt.Sprintf("%.2f%%", sum.RiskOfRuin*100))
	if sum.RiskOfRuin > 0 {
		risk = badStyle.Render(fmt.Sprintf("%.2f%%", sum.RiskOfRuin*100))
	}

	lines = append(lines, "",
		row("Starting bankroll", fmt.Sprintf("%.2f", s.Bankroll)),
		row("Runs", fmt.Sprintf("%d of %d", sum.Runs, s.Runs)),
		row("Risk of ruin", risk+valueStyle.Render(fmt.Sprintf(" (%d ruined)", sum.Ruined))),
		row("Final bankroll", fmt.Sprintf("min %.2f, median %.2f, max %.2f", sum.MinFinalBankroll, sum.MedianFinalBankroll, sum.MaxFinalBankroll)),
		row("Mean profit per run", signed(sum.MeanProfit, "%.2f")),
		row("95% CI", fmt.Sprintf("[%.2f, %.2f]", sum.CI95Low, sum.CI95High)),
	)

	if len(curve) > 0 {
		lines = append(lines, "", labelStyle.Render("Average bankroll"))
		for _, p := range curve {
			lines = append(lines, row(fmt.Sprintf("  hand %d", p.Hand), signed(p.Bankroll-s.Bankroll, "%+.2f")))
		}
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

var dealerColumns = []string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "A"}

func renderChart(name string, bucket int, chart *strategy.Chart) string {
	var b strings.Builder
	title := name
	if bucket != 0 {
		title = fmt.Sprintf("%s at true count %+d", name, bucket)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	sections := []struct {
		table  strategy.Table
		labels []string
	}{
		{strategy.HardTable, []string{"8-", "9", "10", "11", "12", "13", "14", "15", "16", "17+"}},
		{strategy.SoftTable, []string{"A2", "A3", "A4", "A5", "A6", "A7", "A8+"}},
		{strategy.PairTable, []string{"22", "33", "44", "55", "66", "77", "88", "99", "TT", "AA"}},
	}

	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(labelStyle.Width(6).Render(sec.table.String()))
		for _, col := range dealerColumns {
			b.WriteString(labelStyle.Width(4).Render(col))
		}
		b.WriteString("\n")
		for r, label := range sec.labels {
			b.WriteString(valueStyle.Width(6).Render(label))
			for col := 0; col < strategy.Columns; col++ {
				a := chart.Cell(sec.table, r, col)
				b.WriteString(actionStyles[a].Width(4).Render(a.String()))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Package analysis aggregates independent simulation runs into profit,
// confidence and risk-of-ruin figures, and runs batches of simulations.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lox/bjsim/internal/simulator"
	"github.com/lox/bjsim/internal/statistics"
)

// Summary describes a batch of runs measured against a bankroll baseline
type Summary struct {
	Runs int

	MeanProfit   float64
	StdDevProfit float64
	CI95Low      float64
	CI95High     float64

	// RiskOfRuin is the fraction of runs whose final bankroll fell below zero
	RiskOfRuin float64
	Ruined     int

	MinFinalBankroll float64
	MaxFinalBankroll float64

	TotalHands          int
	TotalAmountBet      float64
	AvgProfitPerHand    float64
	HouseEdgePercent    float64
	MeanFinalBankroll   float64
	MedianFinalBankroll float64

	// Rounds pools the per-round ledgers of every run
	Rounds statistics.Statistics
}

// Analyze summarises runs. Profit is measured as final bankroll minus baseline.
func Analyze(results []simulator.Result, baseline float64) Summary {
	n := len(results)
	if n == 0 {
		return Summary{}
	}

	profits := make([]float64, n)
	finals := make([]float64, n)
	s := Summary{
		Runs:             n,
		MinFinalBankroll: math.Inf(1),
		MaxFinalBankroll: math.Inf(-1),
	}

	var totalProfit float64
	for i, r := range results {
		profits[i] = r.FinalBankroll - baseline
		finals[i] = r.FinalBankroll
		totalProfit += profits[i]

		if r.FinalBankroll < 0 {
			s.Ruined++
		}
		s.MinFinalBankroll = math.Min(s.MinFinalBankroll, r.FinalBankroll)
		s.MaxFinalBankroll = math.Max(s.MaxFinalBankroll, r.FinalBankroll)
		s.TotalHands += r.HandsPlayed
		s.TotalAmountBet += r.AmountBet
		s.Rounds.Merge(r.Stats)
	}

	s.MeanProfit, s.StdDevProfit = stat.MeanStdDev(profits, nil)
	if n < 2 {
		s.StdDevProfit = 0
	}
	s.CI95Low, s.CI95High = calculateCI95(s.MeanProfit, s.StdDevProfit, n)
	s.RiskOfRuin = float64(s.Ruined) / float64(n)

	s.MeanFinalBankroll = stat.Mean(finals, nil)
	sort.Float64s(finals)
	s.MedianFinalBankroll = stat.Quantile(0.5, stat.Empirical, finals, nil)

	if s.TotalHands > 0 {
		s.AvgProfitPerHand = totalProfit / float64(s.TotalHands)
	}
	if s.TotalAmountBet > 0 {
		s.HouseEdgePercent = (1 - (totalProfit+s.TotalAmountBet)/s.TotalAmountBet) * 100
	}
	return s
}

// calculateCI95 returns a t-based 95% interval for the mean. A single run
// has no spread to estimate, so the interval collapses onto the mean.
func calculateCI95(mean, stdDev float64, n int) (float64, float64) {
	if n <= 1 {
		return mean, mean
	}

	se := stdDev / math.Sqrt(float64(n))
	tDist := distuv.StudentsT{
		Nu:    float64(n - 1),
		Mu:    0,
		Sigma: 1,
	}
	margin := tDist.Quantile(0.975) * se
	return mean - margin, mean + margin
}

// AverageHistory returns the per-hand mean bankroll across runs, truncated to
// the shortest history so every point averages the same runs.
func AverageHistory(results []simulator.Result) []float64 {
	if len(results) == 0 {
		return nil
	}

	length := len(results[0].BankrollHistory)
	for _, r := range results[1:] {
		if len(r.BankrollHistory) < length {
			length = len(r.BankrollHistory)
		}
	}

	avg := make([]float64, length)
	for _, r := range results {
		for i := 0; i < length; i++ {
			avg[i] += r.BankrollHistory[i]
		}
	}
	for i := range avg {
		avg[i] /= float64(len(results))
	}
	return avg
}

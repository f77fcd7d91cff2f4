package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjsim/internal/simulator"
	"github.com/lox/bjsim/internal/statistics"
)

func TestAnalyzeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Analyze(nil, 1000))
}

func TestAnalyze(t *testing.T) {
	results := []simulator.Result{
		{HandsPlayed: 100, FinalBankroll: 1100, AmountBet: 1000},
		{HandsPlayed: 100, FinalBankroll: 900, AmountBet: 1000},
		{HandsPlayed: 50, FinalBankroll: -10, AmountBet: 1010},
		{HandsPlayed: 100, FinalBankroll: 1010, AmountBet: 990},
	}

	s := Analyze(results, 1000)
	require.Equal(t, 4, s.Runs)

	// profits: 100, -100, -1010, 10
	assert.InDelta(t, -250.0, s.MeanProfit, 1e-9)
	assert.Equal(t, 1, s.Ruined)
	assert.Equal(t, 0.25, s.RiskOfRuin)
	assert.Equal(t, -10.0, s.MinFinalBankroll)
	assert.Equal(t, 1100.0, s.MaxFinalBankroll)
	assert.Equal(t, 350, s.TotalHands)
	assert.Equal(t, 4000.0, s.TotalAmountBet)
	assert.InDelta(t, -1000.0/350, s.AvgProfitPerHand, 1e-9)
	assert.InDelta(t, 25.0, s.HouseEdgePercent, 1e-9)
	assert.InDelta(t, 750.0, s.MeanFinalBankroll, 1e-9)

	// Sample standard deviation of the profits
	var ss float64
	for _, p := range []float64{100, -100, -1010, 10} {
		ss += (p + 250) * (p + 250)
	}
	assert.InDelta(t, math.Sqrt(ss/3), s.StdDevProfit, 1e-9)

	// t quantile for 3 degrees of freedom is wider than the normal 1.96
	margin := s.CI95High - s.MeanProfit
	assert.InDelta(t, s.MeanProfit-s.CI95Low, margin, 1e-9)
	assert.InDelta(t, 3.182446*s.StdDevProfit/2, margin, 1e-3)
}

func TestAnalyzePoolsRoundStatistics(t *testing.T) {
	first := &statistics.Statistics{}
	first.Add(statistics.RoundResult{Net: 22.5, Wagered: 15, Hands: 1, Blackjack: true})
	first.Add(statistics.RoundResult{Net: -15, Wagered: 15, Hands: 1, Busts: 1})

	second := &statistics.Statistics{}
	second.Add(statistics.RoundResult{Net: -7.5, Wagered: 15, Hands: 1, Surrenders: 1})

	s := Analyze([]simulator.Result{
		{HandsPlayed: 2, FinalBankroll: 7.5, AmountBet: 30, Stats: first},
		{HandsPlayed: 1, FinalBankroll: -7.5, AmountBet: 15, Stats: second},
	}, 0)

	r := s.Rounds
	assert.Equal(t, 3, r.Rounds)
	assert.Equal(t, 1, r.Blackjacks)
	assert.Equal(t, 1, r.Busts)
	assert.Equal(t, 1, r.Surrenders)
	assert.Equal(t, 45.0, r.Wagered)
	assert.InDelta(t, 0.0, r.Mean(), 1e-12)
	assert.InDelta(t, 1.0/3, r.Rate(r.Blackjacks), 1e-12)
	assert.NoError(t, r.Validate())
}

func TestAnalyzeSingleRun(t *testing.T) {
	s := Analyze([]simulator.Result{{HandsPlayed: 10, FinalBankroll: 50, AmountBet: 100}}, 0)
	assert.Equal(t, 50.0, s.MeanProfit)
	assert.Equal(t, 0.0, s.StdDevProfit)
	assert.Equal(t, 50.0, s.CI95Low)
	assert.Equal(t, 50.0, s.CI95High)
	assert.Equal(t, 0.0, s.RiskOfRuin)
	assert.Equal(t, 50.0, s.MedianFinalBankroll)
	assert.InDelta(t, -50.0, s.HouseEdgePercent, 1e-9)
}

func TestAnalyzeNothingBet(t *testing.T) {
	s := Analyze([]simulator.Result{{}, {}}, 0)
	assert.Equal(t, 0.0, s.HouseEdgePercent)
	assert.Equal(t, 0.0, s.AvgProfitPerHand)
	assert.Equal(t, 0.0, s.StdDevProfit)
}

func TestAverageHistory(t *testing.T) {
	assert.Nil(t, AverageHistory(nil))

	results := []simulator.Result{
		{BankrollHistory: []float64{10, 20, 30, 40}},
		{BankrollHistory: []float64{-10, 0, 10}},
		{BankrollHistory: []float64{30, 40, 50, 60, 70}},
	}
	assert.Equal(t, []float64{10, 20, 30}, AverageHistory(results))
}

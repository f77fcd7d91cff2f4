package statistics

import (
	"fmt"
	"math"
)

// RoundResult is the outcome of a single blackjack round from the player's side
type RoundResult struct {
	Net     float64 // Net won or lost including insurance
	Wagered float64 // Sum of the final bets of every player hand
	Hands   int     // Player hands at settlement (more than one after splits)

	Blackjack       bool // Player natural
	DealerBlackjack bool

	Busts      int // Player hands that busted
	Surrenders int
	Doubles    int
	Splits     int

	InsuranceTaken bool
	InsuranceNet   float64

	InvalidActions int // Chart cells that held no playable action
}

// Statistics tracks per-round blackjack simulation statistics
type Statistics struct {
	Rounds int
	Sum    float64
	Sum2   float64 // Sum of squares for variance calculation

	// Outcome ledger. Every round lands in exactly one bucket.
	Wins     int
	Losses   int
	Pushes   int
	WinNet   float64
	LossNet  float64
	AllNet   float64 // Total net for sanity check
	Wagered  float64
	MaxWin   float64
	MaxLoss  float64
	MaxHands int

	Blackjacks       int
	DealerBlackjacks int
	Busts            int
	Surrenders       int
	Doubles          int
	Splits           int

	InsuranceTaken int
	InsuranceWon   int
	InsuranceNet   float64

	InvalidActions int
}

// Mean returns the mean net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of round results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of round results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a round into the statistics
func (s *Statistics) Add(r RoundResult) {
	net := r.Net
	s.Rounds++
	s.Sum += net
	s.Sum2 += net * net

	switch {
	case net > 0:
		s.Wins++
		s.WinNet += net
		if net > s.MaxWin {
			s.MaxWin = net
		}
	case net < 0:
		s.Losses++
		s.LossNet += net
		if net < s.MaxLoss {
			s.MaxLoss = net
		}
	default:
		s.Pushes++
	}
	s.AllNet += net
	s.Wagered += r.Wagered
	if r.Hands > s.MaxHands {
		s.MaxHands = r.Hands
	}

	if r.Blackjack {
		s.Blackjacks++
	}
	if r.DealerBlackjack {
		s.DealerBlackjacks++
	}
	s.Busts += r.Busts
	s.Surrenders += r.Surrenders
	s.Doubles += r.Doubles
	s.Splits += r.Splits

	if r.InsuranceTaken {
		s.InsuranceTaken++
		if r.InsuranceNet > 0 {
			s.InsuranceWon++
		}
		s.InsuranceNet += r.InsuranceNet
	}
	s.InvalidActions += r.InvalidActions
}

// WinRate returns the fraction of rounds with a positive net
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// Rate returns count as a fraction of rounds played
func (s *Statistics) Rate(count int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(count) / float64(s.Rounds)
}

// Merge folds the rounds of another run into s
func (s *Statistics) Merge(o *Statistics) {
	if o == nil {
		return
	}
	s.Rounds += o.Rounds
	s.Sum += o.Sum
	s.Sum2 += o.Sum2

	s.Wins += o.Wins
	s.Losses += o.Losses
	s.Pushes += o.Pushes
	s.WinNet += o.WinNet
	s.LossNet += o.LossNet
	s.AllNet += o.AllNet
	s.Wagered += o.Wagered
	s.MaxWin = math.Max(s.MaxWin, o.MaxWin)
	s.MaxLoss = math.Min(s.MaxLoss, o.MaxLoss)
	if o.MaxHands > s.MaxHands {
		s.MaxHands = o.MaxHands
	}

	s.Blackjacks += o.Blackjacks
	s.DealerBlackjacks += o.DealerBlackjacks
	s.Busts += o.Busts
	s.Surrenders += o.Surrenders
	s.Doubles += o.Doubles
	s.Splits += o.Splits

	s.InsuranceTaken += o.InsuranceTaken
	s.InsuranceWon += o.InsuranceWon
	s.InsuranceNet += o.InsuranceNet
	s.InvalidActions += o.InvalidActions
}

// ledgerTolerance scales with the money moved through the ledger
func (s *Statistics) ledgerTolerance() float64 {
	return 1e-9 * math.Max(1, s.WinNet-s.LossNet)
}

// IsLedgerBalanced checks that wins and losses add up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.WinNet-s.LossNet) <= s.ledgerTolerance()
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllNet=%.6f, WinNet=%.6f, LossNet=%.6f",
			s.AllNet, s.WinNet, s.LossNet)
	}

	if s.Rounds < 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if outcomes := s.Wins + s.Losses + s.Pushes; outcomes != s.Rounds {
		return fmt.Errorf("outcome total (%d) does not match rounds count (%d)", outcomes, s.Rounds)
	}

	if s.InsuranceWon > s.InsuranceTaken {
		return fmt.Errorf("insurance won (%d) exceeds insurance taken (%d)", s.InsuranceWon, s.InsuranceTaken)
	}

	if math.IsNaN(s.Sum) || math.IsInf(s.Sum, 0) {
		return fmt.Errorf("non-finite net total: %v", s.Sum)
	}

	return nil
}

package strategy

import (
	"fmt"
	"math"
)

// SpreadStep is one rung of a bet spread: from Count upwards bet Bet units
type SpreadStep struct {
	Count int     `toml:"count"`
	Bet   float64 `toml:"bet"`
}

// Spread is an ascending list of steps. An empty spread bets flat.
type Spread []SpreadStep

// Validate checks that steps are strictly ascending with positive bets
func (s Spread) Validate() error {
	for i, step := range s {
		if step.Bet <= 0 {
			return fmt.Errorf("step %d: bet multiplier must be positive, got %g", i, step.Bet)
		}
		if i > 0 && step.Count <= s[i-1].Count {
			return fmt.Errorf("step %d: count %d is not above previous count %d", i, step.Count, s[i-1].Count)
		}
	}
	return nil
}

// Multiplier returns the bet multiplier for a true count: the highest step
// whose count does not exceed the floored true count, or 1 when none does.
func (s Spread) Multiplier(trueCount float64) float64 {
	tc := floor(trueCount)
	multiplier := 1.0
	for _, step := range s {
		if step.Count > tc {
			break
		}
		multiplier = step.Bet
	}
	return multiplier
}

func floor(x float64) int {
	return int(math.Floor(x))
}

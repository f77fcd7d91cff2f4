package strategy

import (
	"fmt"
	"strings"

	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/rules"
)

// Chart dimensions
const (
	HardRows = 10
	SoftRows = 7
	PairRows = 10
	Columns  = 10
)

// Count buckets available to count-indexed strategies
const (
	MinBucket  = -6
	MaxBucket  = 6
	NumBuckets = MaxBucket - MinBucket + 1
)

// Table selects the section of a chart a hand is looked up in
type Table int

const (
	HardTable Table = iota
	SoftTable
	PairTable
)

func (t Table) String() string {
	switch t {
	case HardTable:
		return "hard"
	case SoftTable:
		return "soft"
	case PairTable:
		return "pairs"
	default:
		return "unknown"
	}
}

// Rows returns the number of rows in the table
func (t Table) Rows() int {
	switch t {
	case SoftTable:
		return SoftRows
	case PairTable:
		return PairRows
	default:
		return HardRows
	}
}

func parseTable(s string) (Table, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hard":
		return HardTable, nil
	case "soft":
		return SoftTable, nil
	case "pair", "pairs":
		return PairTable, nil
	}
	return 0, fmt.Errorf("unknown chart table %q", s)
}

// Chart is one complete playing strategy: hard totals, soft totals and
// pairs, each indexed by row and dealer upcard column.
type Chart struct {
	Hard  [HardRows][Columns]Action
	Soft  [SoftRows][Columns]Action
	Pairs [PairRows][Columns]Action
}

// Cell returns the action at the given coordinates
func (c *Chart) Cell(t Table, row, col int) Action {
	switch t {
	case SoftTable:
		return c.Soft[row][col]
	case PairTable:
		return c.Pairs[row][col]
	default:
		return c.Hard[row][col]
	}
}

// Set replaces the action at the given coordinates
func (c *Chart) Set(t Table, row, col int, a Action) {
	switch t {
	case SoftTable:
		c.Soft[row][col] = a
	case PairTable:
		c.Pairs[row][col] = a
	default:
		c.Hard[row][col] = a
	}
}

// Lookup returns the chart action for a player hand against the dealer upcard
func (c *Chart) Lookup(cards []deck.Card, upcard deck.Card) Action {
	t, row, col := Coordinates(cards, upcard)
	return c.Cell(t, row, col)
}

// Validate reports the first cell that does not hold a known action
func (c *Chart) Validate() error {
	for _, t := range []Table{HardTable, SoftTable, PairTable} {
		for row := 0; row < t.Rows(); row++ {
			for col := 0; col < Columns; col++ {
				if c.Cell(t, row, col) == Invalid {
					return fmt.Errorf("%w: %s row %d column %d", ErrUnknownAction, t, row, col)
				}
			}
		}
	}
	return nil
}

// IsPair reports a two card hand of equal ranks
func IsPair(cards []deck.Card) bool {
	return len(cards) == 2 && cards[0].Rank == cards[1].Rank
}

// Coordinates maps a hand and upcard to a chart cell
func Coordinates(cards []deck.Card, upcard deck.Card) (Table, int, int) {
	col := Column(upcard.Rank)
	switch {
	case IsPair(cards):
		return PairTable, pairRow(cards[0].Rank), col
	case rules.IsSoft(cards):
		return SoftTable, softRow(rules.HandValue(cards)), col
	default:
		return HardTable, hardRow(rules.HandValue(cards)), col
	}
}

// Column maps a dealer upcard rank to a chart column: 2..9 are columns 0..7,
// ten-cards column 8 and the Ace column 9.
func Column(r deck.Rank) int {
	switch {
	case r == deck.Ace:
		return 9
	case r.IsTen():
		return 8
	default:
		return int(r - deck.Two)
	}
}

func pairRow(r deck.Rank) int {
	return Column(r)
}

func softRow(total int) int {
	if total >= 19 {
		return 6
	}
	row := total - 13
	if row < 0 {
		row = 0
	}
	return row
}

func hardRow(total int) int {
	switch {
	case total < 9:
		return 0
	case total >= 17:
		return 9
	default:
		return total - 8
	}
}

// rowFor resolves the row a chart entry describes: a player total for hard
// and soft hands, or the pair rank.
func rowFor(t Table, hand string) (int, error) {
	if t == PairTable {
		r, err := deck.ParseRank(hand)
		if err != nil {
			return 0, err
		}
		return pairRow(r), nil
	}

	var total int
	if _, err := fmt.Sscanf(strings.TrimSpace(hand), "%d", &total); err != nil {
		return 0, fmt.Errorf("invalid %s total %q", t, hand)
	}
	if t == SoftTable {
		if total < 13 || total > 21 {
			return 0, fmt.Errorf("soft total %d out of range", total)
		}
		return softRow(total), nil
	}
	if total < 4 || total > 21 {
		return 0, fmt.Errorf("hard total %d out of range", total)
	}
	return hardRow(total), nil
}

// Bucket floors the true count and clamps it into the chart bucket range
func Bucket(trueCount float64) int {
	b := floor(trueCount)
	if b < MinBucket {
		return MinBucket
	}
	if b > MaxBucket {
		return MaxBucket
	}
	return b
}

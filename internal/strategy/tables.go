package strategy

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/bjsim/internal/deck"
)

// ErrInvalidTables is wrapped by every strategy or spread document error
var ErrInvalidTables = errors.New("invalid strategy tables")

//go:embed tables.toml
var defaultTables []byte

// Tables holds the named strategies and bet spreads available to a simulation.
// A strategy is either a single basic chart or one chart per count bucket.
type Tables struct {
	strategies map[string][]Chart
	spreads    map[string]Spread
}

type tablesDocument struct {
	Strategies map[string]strategyDocument `toml:"strategies"`
	Spreads    map[string]spreadDocument   `toml:"spreads"`
}

type strategyDocument struct {
	Base   string              `toml:"base"`
	Charts []chartDocument     `toml:"charts"`
	Index  []indexPlayDocument `toml:"index"`
}

type chartDocument struct {
	Hard  [][]string `toml:"hard"`
	Soft  [][]string `toml:"soft"`
	Pairs [][]string `toml:"pairs"`
}

type indexPlayDocument struct {
	Table  string `toml:"table"`
	Hand   string `toml:"hand"`
	Dealer string `toml:"dealer"`
	Count  int    `toml:"count"`
	Action string `toml:"action"`
	Below  bool   `toml:"below"`
}

type spreadDocument struct {
	Thresholds []SpreadStep `toml:"thresholds"`
}

// NewTables assembles tables from charts built in code. Unlike ParseTables
// the charts are taken as given; cells left Invalid surface at decision time.
func NewTables(strategies map[string][]Chart, spreads map[string]Spread) *Tables {
	t := &Tables{
		strategies: make(map[string][]Chart, len(strategies)),
		spreads:    make(map[string]Spread, len(spreads)),
	}
	for name, charts := range strategies {
		t.strategies[name] = charts
	}
	for name, spread := range spreads {
		t.spreads[name] = spread
	}
	return t
}

// DefaultTables returns the tables compiled into the binary: the "basic" and
// "deviations" strategies and the "none", "basic" and "aggressive" spreads.
func DefaultTables() (*Tables, error) {
	return ParseTables(defaultTables)
}

// DefaultDocument returns the TOML source of the built-in tables
func DefaultDocument() []byte {
	return defaultTables
}

// LoadTables reads a TOML tables document from disk
func LoadTables(filename string) (*Tables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}
	tables, err := ParseTables(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return tables, nil
}

// ParseTables decodes and validates a TOML tables document. Any shape or
// code problem fails the whole document.
func ParseTables(data []byte) (*Tables, error) {
	var doc tablesDocument
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTables, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidTables, strings.Join(keys, ", "))
	}

	t := &Tables{
		strategies: make(map[string][]Chart, len(doc.Strategies)),
		spreads:    make(map[string]Spread, len(doc.Spreads)),
	}

	for name := range doc.Strategies {
		if _, err := t.resolve(doc.Strategies, name, map[string]bool{}); err != nil {
			return nil, fmt.Errorf("%w: strategy %q: %v", ErrInvalidTables, name, err)
		}
	}

	for name, sd := range doc.Spreads {
		spread := Spread(sd.Thresholds)
		if err := spread.Validate(); err != nil {
			return nil, fmt.Errorf("%w: spread %q: %v", ErrInvalidTables, name, err)
		}
		t.spreads[name] = spread
	}

	return t, nil
}

func (t *Tables) resolve(docs map[string]strategyDocument, name string, visiting map[string]bool) ([]Chart, error) {
	if charts, ok := t.strategies[name]; ok {
		return charts, nil
	}
	if visiting[name] {
		return nil, fmt.Errorf("base cycle through %q", name)
	}
	visiting[name] = true

	sd, ok := docs[name]
	if !ok {
		return nil, fmt.Errorf("unknown base strategy %q", name)
	}

	var charts []Chart
	switch {
	case sd.Base != "" && len(sd.Charts) > 0:
		return nil, fmt.Errorf("declares both charts and a base strategy")
	case sd.Base != "":
		base, err := t.resolve(docs, sd.Base, visiting)
		if err != nil {
			return nil, err
		}
		charts, err = applyIndexPlays(base, sd.Index)
		if err != nil {
			return nil, err
		}
	default:
		if len(sd.Index) > 0 {
			return nil, fmt.Errorf("index plays need a base strategy")
		}
		if len(sd.Charts) != 1 && len(sd.Charts) != NumBuckets {
			return nil, fmt.Errorf("expected 1 or %d charts, got %d", NumBuckets, len(sd.Charts))
		}
		for i, cd := range sd.Charts {
			chart, err := cd.compile()
			if err != nil {
				return nil, fmt.Errorf("chart %d: %w", i, err)
			}
			charts = append(charts, chart)
		}
	}

	t.strategies[name] = charts
	return charts, nil
}

func (cd chartDocument) compile() (Chart, error) {
	var c Chart
	sections := []struct {
		table Table
		grid  [][]string
	}{
		{HardTable, cd.Hard},
		{SoftTable, cd.Soft},
		{PairTable, cd.Pairs},
	}

	for _, s := range sections {
		if len(s.grid) != s.table.Rows() {
			return Chart{}, fmt.Errorf("%s: expected %d rows, got %d", s.table, s.table.Rows(), len(s.grid))
		}
		for row, cells := range s.grid {
			if len(cells) != Columns {
				return Chart{}, fmt.Errorf("%s row %d: expected %d columns, got %d", s.table, row, Columns, len(cells))
			}
			for col, code := range cells {
				a, err := ParseAction(code)
				if err != nil {
					return Chart{}, fmt.Errorf("%s row %d column %d: %w", s.table, row, col, err)
				}
				c.Set(s.table, row, col, a)
			}
		}
	}
	return c, nil
}

// applyIndexPlays expands a base strategy into one chart per count bucket and
// overrides the cells named by each index play from its count upwards, or
// strictly below it when Below is set.
func applyIndexPlays(base []Chart, plays []indexPlayDocument) ([]Chart, error) {
	charts := make([]Chart, NumBuckets)
	for i := range charts {
		if len(base) == 1 {
			charts[i] = base[0]
		} else {
			charts[i] = base[i]
		}
	}

	for i, p := range plays {
		table, err := parseTable(p.Table)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		row, err := rowFor(table, p.Hand)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		upcard, err := deck.ParseRank(p.Dealer)
		if err != nil {
			return nil, fmt.Errorf("index %d: dealer: %w", i, err)
		}
		action, err := ParseAction(p.Action)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}

		col := Column(upcard)
		for b := MinBucket; b <= MaxBucket; b++ {
			applies := b >= p.Count
			if p.Below {
				applies = b < p.Count
			}
			if applies {
				charts[b-MinBucket].Set(table, row, col, action)
			}
		}
	}
	return charts, nil
}

// Strategy returns the charts of a named strategy
func (t *Tables) Strategy(name string) ([]Chart, error) {
	charts, ok := t.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: no strategy named %q", ErrInvalidTables, name)
	}
	return charts, nil
}

// Spread returns a named bet spread
func (t *Tables) Spread(name string) (Spread, error) {
	spread, ok := t.spreads[name]
	if !ok {
		return nil, fmt.Errorf("%w: no spread named %q", ErrInvalidTables, name)
	}
	return spread, nil
}

// StrategyNames lists the strategies in the document, sorted
func (t *Tables) StrategyNames() []string {
	return sortedKeys(t.strategies)
}

// SpreadNames lists the spreads in the document, sorted
func (t *Tables) SpreadNames() []string {
	return sortedKeys(t.spreads)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package strategy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is returned for chart codes outside H, S, DH, DS, P, PH, RH
var ErrUnknownAction = errors.New("unknown action code")

// Action is a strategy chart cell
type Action uint8

const (
	// Invalid is the zero value; a validated chart never contains it.
	Invalid Action = iota
	Hit
	Stand
	// DoubleHit doubles when allowed, otherwise hits
	DoubleHit
	// DoubleStand doubles when allowed, otherwise stands
	DoubleStand
	Split
	// SplitHit splits when double after split is allowed, otherwise hits
	SplitHit
	// SurrenderHit surrenders when allowed, otherwise hits
	SurrenderHit
)

var actionCodes = map[Action]string{
	Hit:          "H",
	Stand:        "S",
	DoubleHit:    "DH",
	DoubleStand:  "DS",
	Split:        "P",
	SplitHit:     "PH",
	SurrenderHit: "RH",
}

// String returns the chart code of the action
func (a Action) String() string {
	if code, ok := actionCodes[a]; ok {
		return code
	}
	return "?"
}

// ParseAction parses a chart code
func ParseAction(code string) (Action, error) {
	needle := strings.ToUpper(strings.TrimSpace(code))
	for a, c := range actionCodes {
		if c == needle {
			return a, nil
		}
	}
	return Invalid, fmt.Errorf("%w: %q", ErrUnknownAction, code)
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	if a == Invalid {
		return nil, fmt.Errorf("%w: invalid", ErrUnknownAction)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

package units

import (
	"errors"
	"fmt"
	"strings"
)

// Unit is a display or input time unit. Nanoseconds are the canonical base.
type Unit string

const (
	NS Unit = "ns"
	US Unit = "μs"
	MS Unit = "ms"
	S  Unit = "s"
)

// Units in ascending order of magnitude.
var Units = []Unit{NS, US, MS, S}

var ErrInvalidUnit = errors.New("invalid time unit")

func ParseUnit(symbol string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(symbol)) {
	case "ns":
		return NS, nil
	case "us", "μs", "µs":
		return US, nil
	case "ms":
		return MS, nil
	case "s":
		return S, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUnit, symbol)
}

func (u Unit) Multiplier() float64 {
	switch u {
	case NS:
		return 1
	case US:
		return 1e3
	case MS:
		return 1e6
	case S:
		return 1e9
	}
	return 0
}

// ASCII returns the symbol with μ spelled as u.
func (u Unit) ASCII() string {
	if u == US {
		return "us"
	}
	return string(u)
}

func (u Unit) index() int {
	for i, unit := range Units {
		if unit == u {
			return i
		}
	}
	return -1
}

func (u *Unit) UnmarshalText(text []byte) error {
	unit, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = unit
	return nil
}

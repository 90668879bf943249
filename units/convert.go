package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ToNanoseconds scales value by the multiplier of the unit symbol.
func ToNanoseconds(value float64, symbol string) (float64, error) {
	unit, err := ParseUnit(symbol)
	if err != nil {
		return 0, err
	}
	return value * unit.Multiplier(), nil
}

// FormatNanoseconds renders ns in the largest unit whose scaled value is at least 1.
// The result is for display only.
func FormatNanoseconds(ns float64) string {
	switch {
	case ns >= 1e9:
		return fmt.Sprintf("%.2f %s", ns/1e9, S)
	case ns >= 1e6:
		return fmt.Sprintf("%.2f %s", ns/1e6, MS)
	case ns >= 1e3:
		return fmt.Sprintf("%.2f %s", ns/1e3, US)
	}
	return fmt.Sprintf("%.0f %s", ns, NS)
}

// FormatInScale renders ns in a caller-chosen unit, without the symbol.
func FormatInScale(ns float64, unit Unit) string {
	multiplier := unit.Multiplier()
	if multiplier == 0 {
		multiplier = 1
	}
	scaled := ns / multiplier
	switch {
	case scaled < 1:
		return strconv.FormatFloat(scaled, 'f', 3, 64)
	case scaled < 1000:
		return strconv.FormatFloat(scaled, 'f', 1, 64)
	}
	return strconv.FormatFloat(scaled, 'f', 0, 64)
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseInScale parses user-typed text in the given unit. Unparseable text yields 0.
func ParseInScale(text string, unit Unit) float64 {
	match := leadingFloat.FindString(strings.TrimSpace(text))
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value * unit.Multiplier()
}

func PickOptimalUnit(ns float64) Unit {
	switch {
	case ns >= 1e9:
		return S
	case ns >= 1e6:
		return MS
	case ns >= 1e3:
		return US
	}
	return NS
}

// PickOptimalUnitFor picks a unit for a whole program. It starts from the unit of the
// average duration and goes one step coarser when the maximum duration needs it.
func PickOptimalUnitFor(durations []float64) Unit {
	if len(durations) == 0 {
		return US
	}
	var total, longest float64
	for i, d := range durations {
		total += d
		if i == 0 || d > longest {
			longest = d
		}
	}
	avgIndex := PickOptimalUnit(total / float64(len(durations))).index()
	maxIndex := PickOptimalUnit(longest).index()
	return Units[min(maxIndex, avgIndex+1)]
}

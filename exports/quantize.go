package exports

import (
	"math"
	"strconv"

	"github.com/reusee/pulser/programs"
)

// nanoseconds resolves an instruction duration, falling back to the raw
// magnitude when its unit symbol is unknown so that export never fails.
func nanoseconds(inst programs.Instruction) float64 {
	ns, err := inst.Nanoseconds()
	if err != nil {
		return inst.Duration
	}
	return ns
}

// quantize picks a coarse unit by magnitude and rounds to a whole number of it.
// Sub-unit precision is lost: 1500 ns becomes 2 us.
func quantize(ns float64) (value string, unit string) {
	switch {
	case ns >= 1e6:
		return formatNumber(math.Round(ns / 1e6)), "ms"
	case ns >= 1e3:
		return formatNumber(math.Round(ns / 1e3)), "us"
	}
	return formatNumber(ns), "ns"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func programName(program programs.Program) string {
	if program.Name == "" {
		return "Untitled"
	}
	return program.Name
}

package exports

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reusee/pulser/flags"
	"github.com/reusee/pulser/programs"
)

const scriptHeader = `# Generated pulse program
from pulser import PulseBlaster, PBInstruction

# Program instructions
instructions = [
`

const scriptFooter = `
]

# Run the program
with PulseBlaster(board=0, core_clock_MHz=500.0) as pb:
    pb.program_pulse_program(instructions)
    pb.start()
    input("Press Enter to stop the program...")
    # Add your timing logic here
    pb.stop()
`

// Script renders the program as a listing for the pulser scripting library.
func Script(program programs.Program) string {
	lines := make([]string, 0, len(program.Instructions))
	for _, inst := range program.Instructions {
		duration, unit := quantize(nanoseconds(inst))
		var line strings.Builder
		fmt.Fprintf(&line,
			"    PBInstruction(flags=%s, opcode=%s, data=%d, duration=%s, units=%q",
			scriptFlags(inst.Flags),
			strconv.Quote(inst.Opcode),
			inst.Data,
			duration,
			unit,
		)
		for _, field := range inst.AnalogFields() {
			if *field.Value != nil {
				fmt.Fprintf(&line, ", %s=%s", field.Name, scriptFloat(**field.Value))
			}
		}
		line.WriteString(")")
		lines = append(lines, line.String())
	}
	return scriptHeader + strings.Join(lines, ",\n") + scriptFooter
}

// scriptFlags renders flags as an index list, or as a quoted literal when the
// value is not a clean channel set.
func scriptFlags(f flags.Flags) string {
	if f.Kind() == flags.KindBits {
		return strconv.Quote(f.Bits())
	}
	mask := f.Bitmask()
	if mask == 0 {
		return "[]"
	}
	if mask>>flags.MaxChannels != 0 {
		return strconv.Quote(flags.FormatHex(mask))
	}
	indices := flags.ActiveIndices(mask, flags.MaxChannels)
	strs := make([]string, len(indices))
	for i, idx := range indices {
		strs[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

// scriptFloat renders v as a python float literal.
func scriptFloat(v float64) string {
	s := formatNumber(v)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

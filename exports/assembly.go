package exports

import (
	"fmt"
	"strings"

	"github.com/reusee/pulser/flags"
	"github.com/reusee/pulser/programs"
)

const assemblyLegend = `//
// Format: [label:] 0b111111111111111111111111, duration[, opcode[, data]]
// Flags: Binary format (24-bit)
// Duration: Time with units (ns, us, ms)
// Opcodes: continue, stop, branch, jsr, rts, loop, end_loop, etc.
//
// ================================================================
`

// Assembly renders the program in the interpreter's assembly format.
// Branch and subroutine targets get a lineN label.
func Assembly(program programs.Program) string {
	count := len(program.Instructions)

	// targets
	needsLabel := make(map[int]bool)
	for _, inst := range program.Instructions {
		if inst.Op().HasTarget() && inst.Data > 0 && inst.Data < count {
			needsLabel[inst.Data] = true
		}
	}

	target := func(data int) string {
		if data <= 0 || data >= count {
			return "start"
		}
		return fmt.Sprintf("line%d", data)
	}

	lines := make([]string, 0, count)
	for i, inst := range program.Instructions {
		var line strings.Builder

		switch {
		case i == 0:
			line.WriteString("start: ")
		case needsLabel[i]:
			fmt.Fprintf(&line, "line%d: ", i)
		default:
			line.WriteString("       ")
		}

		duration, unit := quantize(nanoseconds(inst))
		fmt.Fprintf(&line, "%s, %s%s",
			flags.FormatBinary(inst.Flags.Bitmask(), flags.MaxChannels),
			duration,
			unit,
		)

		switch inst.Op() {
		case programs.OpBranch:
			line.WriteString(", branch, " + target(inst.Data))
		case programs.OpJSR:
			line.WriteString(", jsr, " + target(inst.Data))
		case programs.OpRTS:
			line.WriteString(", rts")
		case programs.OpLoop:
			fmt.Fprintf(&line, ", loop, %d", inst.Data)
		case programs.OpEndLoop:
			line.WriteString(", end_loop")
		case programs.OpLongDelay:
			fmt.Fprintf(&line, ", long_delay, %d", inst.Data)
		case programs.OpWait:
			line.WriteString(", wait")
		case programs.OpStop:
			line.WriteString(", stop")
		case programs.OpContinue, programs.OpRTI, programs.OpUnknown:
		}

		lines = append(lines, line.String())
	}

	return fmt.Sprintf("// Generated PulseBlaster Interpreter program\n// Program: %s\n// Total Instructions: %d\n",
		programName(program), count) +
		assemblyLegend + "\n" +
		strings.Join(lines, "\n")
}

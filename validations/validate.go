package validations

import (
	"errors"
	"fmt"

	"github.com/reusee/pulser/programs"
)

const (
	EmptyProgram  = "Empty instruction list"
	UnmatchedLoop = "Unmatched LOOP instructions (missing END_LOOP)"
	Unterminated  = "Program should typically end with STOP or BRANCH instruction"
)

// Validate reports structural issues as human readable warnings.
// Warnings are advisory and never block rendering or export.
func Validate(instructions []programs.Instruction) []string {
	if len(instructions) == 0 {
		return []string{EmptyProgram}
	}

	var warnings []string

	loopDepth := 0
	for i, inst := range instructions {
		switch inst.Op() {
		case programs.OpLoop:
			loopDepth++
		case programs.OpEndLoop:
			loopDepth--
			if loopDepth < 0 {
				warnings = append(warnings, fmt.Sprintf("Instruction %d: END_LOOP without matching LOOP", i))
			}
		}
	}
	if loopDepth > 0 {
		warnings = append(warnings, UnmatchedLoop)
	}

	switch instructions[len(instructions)-1].Op() {
	case programs.OpStop, programs.OpBranch:
	default:
		warnings = append(warnings, Unterminated)
	}

	return warnings
}

// Lint reports per-instruction issues that Validate does not cover: unknown
// opcodes, bad durations and out of range BRANCH or JSR targets.
func Lint(instructions []programs.Instruction) []string {
	var warnings []string
	for i, inst := range instructions {
		op := inst.Op()
		if op == programs.OpUnknown {
			warnings = append(warnings, fmt.Sprintf("Instruction %d: unknown opcode %q", i, inst.Opcode))
		}
		if _, err := inst.Nanoseconds(); err != nil {
			if errors.Is(err, programs.ErrNegativeDuration) {
				warnings = append(warnings, fmt.Sprintf("Instruction %d: negative duration", i))
			} else {
				warnings = append(warnings, fmt.Sprintf("Instruction %d: %v", i, err))
			}
		}
		if op.HasTarget() && (inst.Data < 0 || inst.Data >= len(instructions)) {
			warnings = append(warnings, fmt.Sprintf("Instruction %d: %s target %d out of range", i, op, inst.Data))
		}
	}

	return warnings
}

// Check returns the Validate warnings followed by the Lint warnings.
func Check(instructions []programs.Instruction) []string {
	return append(Validate(instructions), Lint(instructions)...)
}

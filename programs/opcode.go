package programs

import "strings"

// Opcode is the control-flow role of an instruction.
type Opcode uint8

const (
	OpUnknown Opcode = iota
	OpContinue
	OpStop
	OpLoop
	OpEndLoop
	OpJSR
	OpRTS
	OpBranch
	OpLongDelay
	OpWait
	OpRTI
)

var Opcodes = []Opcode{
	OpContinue,
	OpStop,
	OpLoop,
	OpEndLoop,
	OpJSR,
	OpRTS,
	OpBranch,
	OpLongDelay,
	OpWait,
	OpRTI,
}

func (o Opcode) String() string {
	switch o {
	case OpContinue:
		return "CONTINUE"
	case OpStop:
		return "STOP"
	case OpLoop:
		return "LOOP"
	case OpEndLoop:
		return "END_LOOP"
	case OpJSR:
		return "JSR"
	case OpRTS:
		return "RTS"
	case OpBranch:
		return "BRANCH"
	case OpLongDelay:
		return "LONG_DELAY"
	case OpWait:
		return "WAIT"
	case OpRTI:
		return "RTI"
	}
	return "UNKNOWN"
}

// ParseOpcode is case-insensitive. Unrecognized names give OpUnknown.
func ParseOpcode(name string) Opcode {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, op := range Opcodes {
		if op.String() == name {
			return op
		}
	}
	return OpUnknown
}

// HasTarget reports whether data is an instruction index.
func (o Opcode) HasTarget() bool {
	return o == OpBranch || o == OpJSR
}

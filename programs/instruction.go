package programs

import (
	"errors"
	"fmt"

	"github.com/reusee/pulser/flags"
	"github.com/reusee/pulser/units"
)

var ErrNegativeDuration = errors.New("negative duration")

// Instruction is one step of a pulse program.
// Data is the loop count for LOOP, the target index for BRANCH and JSR, and
// the multiplier for LONG_DELAY.
type Instruction struct {
	ID               string      `json:"id,omitempty"`
	Flags            flags.Flags `json:"flags"`
	Opcode           string      `json:"opcode"`
	Data             int         `json:"data"`
	Duration         float64     `json:"duration"`
	Units            string      `json:"units,omitempty"`
	Length           *float64    `json:"length,omitempty"`
	DisplayTimeScale string      `json:"displayTimeScale,omitempty"`

	// analog channels, passed through verbatim
	Freq0       *float64 `json:"freq0,omitempty"`
	Phase0      *float64 `json:"phase0,omitempty"`
	Amp0        *float64 `json:"amp0,omitempty"`
	DDSEn0      *float64 `json:"dds_en0,omitempty"`
	PhaseReset0 *float64 `json:"phase_reset0,omitempty"`
	Freq1       *float64 `json:"freq1,omitempty"`
	Phase1      *float64 `json:"phase1,omitempty"`
	Amp1        *float64 `json:"amp1,omitempty"`
	DDSEn1      *float64 `json:"dds_en1,omitempty"`
	PhaseReset1 *float64 `json:"phase_reset1,omitempty"`
}

func (i Instruction) Op() Opcode {
	return ParseOpcode(i.Opcode)
}

// UnitSymbol returns Units, defaulting to ns.
func (i Instruction) UnitSymbol() string {
	if i.Units == "" {
		return string(units.NS)
	}
	return i.Units
}

func (i Instruction) Nanoseconds() (float64, error) {
	ns, err := units.ToNanoseconds(i.Duration, i.UnitSymbol())
	if err != nil {
		return 0, err
	}
	if ns < 0 {
		return 0, fmt.Errorf("%w: %v %s", ErrNegativeDuration, i.Duration, i.UnitSymbol())
	}
	return ns, nil
}

// Clone returns a copy sharing no memory with i.
func (i Instruction) Clone() Instruction {
	ret := i
	if i.Flags.Kind() == flags.KindIndices {
		ret.Flags = flags.Indices(i.Flags.Indices()...)
	}
	if ret.Length != nil {
		v := *ret.Length
		ret.Length = &v
	}
	for _, field := range ret.AnalogFields() {
		if *field.Value != nil {
			v := **field.Value
			*field.Value = &v
		}
	}
	return ret
}

// AnalogField is one optional analog parameter, named as in exchange JSON.
type AnalogField struct {
	Name  string
	Value **float64
}

// AnalogFields returns the analog parameters of i in export order.
func (i *Instruction) AnalogFields() []AnalogField {
	return []AnalogField{
		{"freq0", &i.Freq0},
		{"phase0", &i.Phase0},
		{"amp0", &i.Amp0},
		{"dds_en0", &i.DDSEn0},
		{"phase_reset0", &i.PhaseReset0},
		{"freq1", &i.Freq1},
		{"phase1", &i.Phase1},
		{"amp1", &i.Amp1},
		{"dds_en1", &i.DDSEn1},
		{"phase_reset1", &i.PhaseReset1},
	}
}

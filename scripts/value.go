package scripts

import (
	"fmt"
	"slices"

	"github.com/reusee/pulser/programs"
	"go.starlark.net/starlark"
)

// Instruction is the starlark value returned by PBInstruction.
type Instruction struct {
	programs.Instruction
}

var _ starlark.HasAttrs = new(Instruction)

func (i *Instruction) String() string {
	return fmt.Sprintf("PBInstruction(flags=%s, opcode=%q, data=%d, duration=%v, units=%q)",
		i.Flags, i.Opcode, i.Data, i.Duration, i.UnitSymbol())
}

func (i *Instruction) Type() string {
	return "PBInstruction"
}

func (i *Instruction) Freeze() {}

func (i *Instruction) Truth() starlark.Bool {
	return starlark.True
}

func (i *Instruction) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", i.Type())
}

func (i *Instruction) Attr(name string) (starlark.Value, error) {
	switch name {
	case "flags":
		return starlark.MakeUint(uint(i.Flags.Bitmask())), nil
	case "opcode":
		return starlark.String(i.Opcode), nil
	case "data":
		return starlark.MakeInt(i.Data), nil
	case "duration":
		return starlark.Float(i.Duration), nil
	case "units":
		return starlark.String(i.UnitSymbol()), nil
	case "id":
		return starlark.String(i.ID), nil
	case "nanoseconds":
		ns, err := i.Nanoseconds()
		if err != nil {
			return nil, err
		}
		return starlark.Float(ns), nil
	}
	for _, field := range i.AnalogFields() {
		if field.Name != name {
			continue
		}
		if *field.Value == nil {
			return starlark.None, nil
		}
		return starlark.Float(**field.Value), nil
	}
	return nil, nil
}

func (i *Instruction) AttrNames() []string {
	names := []string{"data", "duration", "flags", "id", "nanoseconds", "opcode", "units"}
	for _, field := range i.AnalogFields() {
		names = append(names, field.Name)
	}
	slices.Sort(names)
	return names
}

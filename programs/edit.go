package programs

import (
	"slices"

	"github.com/reusee/pulser/flags"
	"github.com/reusee/pulser/units"
)

// Edits never touch the input slice; each returns a fresh list.

func NewInstruction(id string) Instruction {
	length := 1000.0
	return Instruction{
		ID:               id,
		Flags:            flags.Mask(0),
		Opcode:           OpContinue.String(),
		Duration:         1000,
		Units:            string(units.NS),
		Length:           &length,
		DisplayTimeScale: string(units.US),
	}
}

func Append(list []Instruction, inst Instruction) []Instruction {
	ret := make([]Instruction, 0, len(list)+1)
	ret = append(ret, list...)
	return append(ret, inst)
}

// Remove drops the instruction at index; out of range indices return a copy.
func Remove(list []Instruction, index int) []Instruction {
	ret := slices.Clone(list)
	if index < 0 || index >= len(ret) {
		return ret
	}
	return slices.Delete(ret, index, index+1)
}

func Replace(list []Instruction, index int, inst Instruction) []Instruction {
	ret := slices.Clone(list)
	if index < 0 || index >= len(ret) {
		return ret
	}
	ret[index] = inst
	return ret
}

// Move relocates the instruction at from so it ends up at index to.
func Move(list []Instruction, from, to int) []Instruction {
	ret := slices.Clone(list)
	if from < 0 || from >= len(ret) || to < 0 || to >= len(ret) || from == to {
		return ret
	}
	inst := ret[from]
	ret = slices.Delete(ret, from, from+1)
	return slices.Insert(ret, to, inst)
}

// SetDuration replaces the duration of the instruction at index with ns,
// keeping Length in step as the editor does.
func SetDuration(list []Instruction, index int, ns float64) []Instruction {
	if index < 0 || index >= len(list) {
		return slices.Clone(list)
	}
	inst := list[index].Clone()
	inst.Duration = ns
	inst.Units = string(units.NS)
	inst.Length = &ns
	return Replace(list, index, inst)
}

package scripts

import (
	"errors"
	"fmt"

	"github.com/reusee/pulser/flags"
	"github.com/reusee/pulser/programs"
	"github.com/reusee/pulser/units"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var (
	ErrNoInstructions = errors.New("script defines no instructions")
	ErrUnknownOpcode  = errors.New("unknown opcode")
)

const maxExecutionSteps = 10_000_000

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Eval runs a starlark program description and collects the global
// `instructions` list. An optional global `name` names the program.
func Eval(name string, src []byte) (program programs.Program, err error) {
	thread := &starlark.Thread{
		Name: name,
	}
	thread.SetMaxExecutionSteps(maxExecutionSteps)

	predeclared := starlark.StringDict{
		"PBInstruction": starlark.NewBuiltin("PBInstruction", pbInstruction),
		"channels":      starlark.NewBuiltin("channels", channels),
	}
	for _, op := range programs.Opcodes {
		predeclared[op.String()] = starlark.String(op.String())
	}

	globals, err := starlark.ExecFileOptions(fileOptions, thread, name, src, predeclared)
	if err != nil {
		return program, err
	}

	if v, ok := globals["name"]; ok {
		s, ok := starlark.AsString(v)
		if !ok {
			return program, fmt.Errorf("name: got %s, want string", v.Type())
		}
		program.Name = s
	}

	list, ok := globals["instructions"]
	if !ok {
		return program, ErrNoInstructions
	}
	iterable, ok := list.(starlark.Iterable)
	if !ok {
		return program, fmt.Errorf("instructions: got %s, want list", list.Type())
	}
	iter := iterable.Iterate()
	defer iter.Done()
	var elem starlark.Value
	program.Instructions = []programs.Instruction{}
	for i := 0; iter.Next(&elem); i++ {
		inst, ok := elem.(*Instruction)
		if !ok {
			return program, fmt.Errorf("instructions[%d]: got %s, want PBInstruction", i, elem.Type())
		}
		program.Instructions = append(program.Instructions, inst.Instruction.Clone())
	}

	return program, nil
}

func pbInstruction(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		flagsValue    starlark.Value
		opcode        string
		data          int
		durationValue starlark.Value
		unitSymbol    = "ns"
		id            string
	)
	var inst programs.Instruction
	analog := inst.AnalogFields()
	analogValues := make([]starlark.Value, len(analog))
	pairs := []any{
		"flags", &flagsValue,
		"opcode", &opcode,
		"data?", &data,
		"duration", &durationValue,
		"units?", &unitSymbol,
		"id?", &id,
	}
	for i, field := range analog {
		pairs = append(pairs, field.Name+"?", &analogValues[i])
	}
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, pairs...); err != nil {
		return nil, err
	}

	f, err := toFlags(flagsValue)
	if err != nil {
		return nil, fmt.Errorf("%s: flags: %w", fn.Name(), err)
	}
	duration, ok := starlark.AsFloat(durationValue)
	if !ok {
		return nil, fmt.Errorf("%s: duration: got %s, want number", fn.Name(), durationValue.Type())
	}
	if duration < 0 {
		return nil, fmt.Errorf("%s: %w", fn.Name(), programs.ErrNegativeDuration)
	}
	if _, err := units.ParseUnit(unitSymbol); err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	if programs.ParseOpcode(opcode) == programs.OpUnknown {
		return nil, fmt.Errorf("%s: %w: %q", fn.Name(), ErrUnknownOpcode, opcode)
	}

	for i, field := range analog {
		v := analogValues[i]
		if v == nil || v == starlark.None {
			continue
		}
		value, ok := starlark.AsFloat(v)
		if !ok {
			return nil, fmt.Errorf("%s: %s: got %s, want number", fn.Name(), field.Name, v.Type())
		}
		*field.Value = &value
	}

	inst.ID = id
	inst.Flags = f
	inst.Opcode = opcode
	inst.Data = data
	inst.Duration = duration
	inst.Units = unitSymbol
	return &Instruction{
		Instruction: inst,
	}, nil
}

func channels(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}
	indices, err := toIndices(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	return starlark.MakeUint(uint(flags.EncodeBitmask(indices))), nil
}

func toFlags(v starlark.Value) (flags.Flags, error) {
	switch v := v.(type) {
	case starlark.Int:
		mask, ok := v.Uint64()
		if !ok || mask > 0xffffffff {
			return flags.Flags{}, fmt.Errorf("mask out of range: %s", v)
		}
		return flags.Mask(uint32(mask)), nil
	case starlark.String:
		return flags.Bits(string(v)), nil
	case starlark.Iterable:
		var elems []starlark.Value
		iter := v.Iterate()
		defer iter.Done()
		var elem starlark.Value
		for iter.Next(&elem) {
			elems = append(elems, elem)
		}
		indices, err := toIndices(elems)
		if err != nil {
			return flags.Flags{}, err
		}
		return flags.Indices(indices...), nil
	}
	return flags.Flags{}, fmt.Errorf("got %s, want int, string or list", v.Type())
}

func toIndices(values []starlark.Value) ([]int, error) {
	indices := make([]int, 0, len(values))
	for _, v := range values {
		i, err := starlark.AsInt32(v)
		if err != nil {
			return nil, err
		}
		indices = append(indices, i)
	}
	return indices, nil
}

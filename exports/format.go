package exports

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/pulser/programs"
)

type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatScript
	FormatSpinAPI
	FormatAssembly
)

var Formats = []Format{
	FormatJSON,
	FormatScript,
	FormatSpinAPI,
	FormatAssembly,
}

var ErrUnknownFormat = errors.New("unknown export format")

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatScript:
		return "script"
	case FormatSpinAPI:
		return "spinapi"
	case FormatAssembly:
		return "asm"
	}
	return "unknown"
}

func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "script", "python", "py":
		return FormatScript, nil
	case "spinapi":
		return FormatSpinAPI, nil
	case "asm", "pb", "interpreter":
		return FormatAssembly, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatScript:
		return ".py"
	case FormatSpinAPI:
		return "_spinapi.py"
	case FormatAssembly:
		return ".pb"
	}
	return ".txt"
}

// FileName derives a download name from the program name.
func (f Format) FileName(program programs.Program) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, program.Name)
	if name == "" {
		name = "pulse_program"
	}
	return name + f.Extension()
}

func Export(format Format, program programs.Program) (string, error) {
	switch format {
	case FormatJSON:
		return JSON(program)
	case FormatScript:
		return Script(program), nil
	case FormatSpinAPI:
		return SpinAPI(program), nil
	case FormatAssembly:
		return Assembly(program), nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownFormat, format)
}

func (f *Format) UnmarshalText(text []byte) error {
	format, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = format
	return nil
}

package exports

import (
	"encoding/json"

	"github.com/reusee/pulser/programs"
)

// JSON serializes the program as modeled. programs.DecodeJSON is its inverse.
func JSON(program programs.Program) (string, error) {
	if program.Instructions == nil {
		program.Instructions = []programs.Instruction{}
	}
	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package programs

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed program.cue
var schemaSrc string

// CheckJSON validates raw exchange-format JSON against the program schema.
func CheckJSON(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString("close({"+schemaSrc+"})", cue.Filename("program.cue"))
	if err := schema.Err(); err != nil {
		return err
	}
	value := ctx.CompileBytes(data, cue.Filename("program.json"))
	if err := value.Err(); err != nil {
		return fmt.Errorf("parse program: %w", err)
	}
	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid program: %w", err)
	}
	return nil
}

func DecodeJSON(data []byte) (program Program, err error) {
	if err := CheckJSON(data); err != nil {
		return program, err
	}
	if err := json.Unmarshal(data, &program); err != nil {
		return program, err
	}
	return program, nil
}

package catalogs

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/reusee/pulser/programs"
)

//go:embed examples.json
var examplesJSON []byte

var ErrNotFound = errors.New("example not found")

var load = sync.OnceValues(func() ([]programs.Program, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(examplesJSON, &raws); err != nil {
		return nil, err
	}
	ret := make([]programs.Program, 0, len(raws))
	for i, raw := range raws {
		program, err := programs.DecodeJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		ret = append(ret, program)
	}
	return ret, nil
})

// All returns copies of the bundled example programs in display order.
func All() []programs.Program {
	examples, err := load()
	if err != nil {
		panic(err)
	}
	ret := make([]programs.Program, len(examples))
	for i, program := range examples {
		ret[i] = program.Clone()
	}
	return ret
}

func Names() []string {
	examples, err := load()
	if err != nil {
		panic(err)
	}
	ret := make([]string, len(examples))
	for i, program := range examples {
		ret[i] = program.Name
	}
	return ret
}

// Find looks up an example by name, ignoring case and surrounding spaces.
func Find(name string) (programs.Program, error) {
	examples, err := load()
	if err != nil {
		return programs.Program{}, err
	}
	name = strings.TrimSpace(name)
	for _, program := range examples {
		if strings.EqualFold(program.Name, name) {
			return program.Clone(), nil
		}
	}
	return programs.Program{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

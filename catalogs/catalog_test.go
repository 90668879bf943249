package catalogs

import (
	"errors"
	"testing"

	"github.com/reusee/pulser/programs"
	"github.com/reusee/pulser/validations"
)

func TestAll(t *testing.T) {
	examples := All()
	if len(examples) != 12 {
		t.Fatalf("got %d", len(examples))
	}
	names := Names()
	for i, program := range examples {
		if program.Name != names[i] {
			t.Fatalf("got %s", program.Name)
		}
		if len(program.Instructions) == 0 {
			t.Fatalf("%s: empty", program.Name)
		}
		if _, err := program.Total(); err != nil {
			t.Fatalf("%s: %v", program.Name, err)
		}
	}
	if names[0] != "CW Green Laser" || names[11] != "Quantum Gate Sequence" {
		t.Fatalf("got %v", names)
	}
}

func TestExamplesValidate(t *testing.T) {
	for _, program := range All() {
		warnings := validations.Check(program.Instructions)
		if len(warnings) != 0 {
			t.Fatalf("%s: got %v", program.Name, warnings)
		}
	}
}

func TestFind(t *testing.T) {
	program, err := Find(" esr readout sequence ")
	if err != nil {
		t.Fatal(err)
	}
	if program.Name != "ESR Readout Sequence" {
		t.Fatalf("got %s", program.Name)
	}
	if len(program.Instructions) != 4 {
		t.Fatalf("got %d", len(program.Instructions))
	}
	if program.Instructions[2].Flags.Bitmask() != 0x5 {
		t.Fatalf("got %v", program.Instructions[2].Flags)
	}
	if op := program.Instructions[3].Op(); op != programs.OpStop {
		t.Fatalf("got %v", op)
	}

	// copies are independent
	program.Instructions[0].Duration = 1
	again, err := Find("ESR Readout Sequence")
	if err != nil {
		t.Fatal(err)
	}
	if again.Instructions[0].Duration != 3000000 {
		t.Fatal("catalog mutated")
	}

	if _, err := Find("foo"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

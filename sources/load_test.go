package sources

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/pulser/catalogs"
	"github.com/reusee/pulser/configs"
	"github.com/reusee/pulser/exports"
	"github.com/reusee/pulser/modes"
	"github.com/reusee/pulser/programs"
)

const testScript = `
name = "from script"
instructions = [
    PBInstruction(flags=channels(1), opcode="CONTINUE", duration=1, units="us"),
    PBInstruction(flags=0, opcode="STOP", duration=1, units="us"),
]
`

func testScope(t *testing.T) dscope.Scope {
	return dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	)
}

func TestLoadExample(t *testing.T) {
	testScope(t).Call(func(
		load Load,
	) {
		program, err := load(t.Context(), "example:Loop Example")
		if err != nil {
			t.Fatal(err)
		}
		if program.Name != "Loop Example" {
			t.Fatalf("got %s", program.Name)
		}
		if _, err := load(t.Context(), "example:foo"); !errors.Is(err, catalogs.ErrNotFound) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	example, err := catalogs.Find("Spin Echo Sequence")
	if err != nil {
		t.Fatal(err)
	}
	content, err := exports.JSON(example)
	if err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "spin_echo.json")
	if err := os.WriteFile(jsonPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	starPath := filepath.Join(dir, "program.star")
	if err := os.WriteFile(starPath, []byte(testScript), 0644); err != nil {
		t.Fatal(err)
	}
	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte(`{"name": "bad", "instructions": [{"opcode": 1}]}`), 0644); err != nil {
		t.Fatal(err)
	}

	testScope(t).Call(func(
		load Load,
	) {
		program, err := load(t.Context(), jsonPath)
		if err != nil {
			t.Fatal(err)
		}
		if program.Name != example.Name || len(program.Instructions) != len(example.Instructions) {
			t.Fatalf("got %+v", program)
		}

		program, err = load(t.Context(), starPath)
		if err != nil {
			t.Fatal(err)
		}
		if program.Name != "from script" || len(program.Instructions) != 2 {
			t.Fatalf("got %+v", program)
		}
		if program.Instructions[0].Flags.Bitmask() != 2 {
			t.Fatalf("got %v", program.Instructions[0].Flags)
		}

		if _, err := load(t.Context(), badPath); err == nil {
			t.Fatal("should error")
		}
		if _, err := load(t.Context(), filepath.Join(dir, "missing.json")); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestLoadURL(t *testing.T) {
	example, err := catalogs.Find("PLE Measurement")
	if err != nil {
		t.Fatal(err)
	}
	content, err := exports.JSON(example)
	if err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ple.json", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, content)
	})
	mux.HandleFunc("/program.star", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, testScript)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	testScope(t).Call(func(
		load Load,
	) {
		program, err := load(t.Context(), server.URL+"/ple.json")
		if err != nil {
			t.Fatal(err)
		}
		if program.Name != "PLE Measurement" {
			t.Fatalf("got %s", program.Name)
		}
		if program.Instructions[len(program.Instructions)-1].Op() != programs.OpStop {
			t.Fatalf("got %+v", program.Instructions)
		}

		program, err = load(t.Context(), server.URL+"/program.star")
		if err != nil {
			t.Fatal(err)
		}
		if program.Name != "from script" {
			t.Fatalf("got %s", program.Name)
		}

		if _, err := load(t.Context(), server.URL+"/missing.json"); !errors.Is(err, ErrFetch) {
			t.Fatalf("got %v", err)
		}
	})
}

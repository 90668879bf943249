package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/reusee/pulser/catalogs"
	"github.com/reusee/pulser/logs"
	"github.com/reusee/pulser/nets"
	"github.com/reusee/pulser/programs"
	"github.com/reusee/pulser/scripts"
)

const ExamplePrefix = "example:"

// MaxFetchSize bounds program documents fetched over http.
const MaxFetchSize = 16 << 20

var ErrFetch = errors.New("fetch program")

// Load resolves a program reference:
// example:NAME from the bundled catalog, http(s) URLs, .star scripts,
// and exchange JSON files otherwise.
type Load func(ctx context.Context, ref string) (programs.Program, error)

func (Module) Load(
	client nets.HTTPClient,
	logger logs.Logger,
) Load {
	return func(ctx context.Context, ref string) (program programs.Program, err error) {
		defer func() {
			if err != nil {
				err = logs.WrapSpan(ctx, fmt.Errorf("load %s: %w", ref, err))
				return
			}
			logger.InfoContext(ctx, "program loaded",
				"ref", ref,
				"name", program.Name,
				"instructions", len(program.Instructions),
			)
		}()

		switch {

		case strings.HasPrefix(ref, ExamplePrefix):
			return catalogs.Find(strings.TrimPrefix(ref, ExamplePrefix))

		case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
			content, err := fetch(ctx, client, ref)
			if err != nil {
				return program, err
			}
			if strings.HasSuffix(ref, ".star") {
				return scripts.Eval(ref, content)
			}
			return programs.DecodeJSON(content)

		}

		content, err := os.ReadFile(ref)
		if err != nil {
			return program, err
		}
		if filepath.Ext(ref) == ".star" {
			return scripts.Eval(ref, content)
		}
		return programs.DecodeJSON(content)
	}
}

func fetch(ctx context.Context, client nets.HTTPClient, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrFetch, resp.Status)
	}
	content, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchSize+1))
	if err != nil {
		return nil, err
	}
	if len(content) > MaxFetchSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrFetch, MaxFetchSize)
	}
	return content, nil
}

package nets

import (
	"net/http"
	"time"

	"github.com/reusee/pulser/configs"
	"github.com/reusee/pulser/vars"
)

type HTTPClient = *http.Client

// HTTPTimeout is the whole-request timeout in seconds.
type HTTPTimeout int

var _ configs.Configurable = HTTPTimeout(0)

func (HTTPTimeout) ConfigExpr() string {
	return "http_timeout"
}

func (Module) HTTPTimeout(
	loader configs.Loader,
) HTTPTimeout {
	return vars.FirstNonZero(
		configs.Get[HTTPTimeout](loader),
		30,
	)
}

func (Module) HTTPClient(
	dialer Dialer,
	timeout HTTPTimeout,
) HTTPClient {
	return &http.Client{
		Timeout: time.Duration(timeout) * time.Second,
		Transport: &http.Transport{
			DialContext: dialer.DialContext,
		},
	}
}

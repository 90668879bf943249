package sources

import (
	"github.com/reusee/dscope"
	"github.com/reusee/pulser/logs"
	"github.com/reusee/pulser/nets"
)

type Module struct {
	dscope.Module
	Nets nets.Module
	Logs logs.Module
}

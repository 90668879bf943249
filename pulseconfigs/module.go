package pulseconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/pulser/configs"
	"github.com/reusee/pulser/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

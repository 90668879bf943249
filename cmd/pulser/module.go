package main

import (
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/pulser/debugs"
	"github.com/reusee/pulser/pulseconfigs"
	"github.com/reusee/pulser/sources"
)

type Module struct {
	dscope.Module
	Configs pulseconfigs.Module
	Sources sources.Module
	Debugs  debugs.Module
}

type Output io.Writer

func (Module) Output() Output {
	return os.Stdout
}

package main

import (
	"errors"

	"github.com/reusee/pulser/cmds"
	"github.com/reusee/pulser/sources"
)

var (
	fileFlag    = cmds.Var[string]("-file")
	exampleFlag = cmds.Var[string]("-example")
	urlFlag     = cmds.Var[string]("-url")
	outFlag     = cmds.Var[string]("-out")

	timelineCmd       = cmds.Switch("timeline")
	validateCmd       = cmds.Switch("validate")
	examplesCmd       = cmds.Switch("examples")
	tapCmd            = cmds.Switch("tap")
	exportExamplesCmd = cmds.Switch("export-examples")
	atTimes           = cmds.Collect[float64]("at")
)

func init() {
	for name, desc := range map[string]string{
		"-file":           "load an exchange JSON file or a .star script",
		"-example":        "load a bundled example by name",
		"-url":            "fetch an exchange JSON document or a .star script",
		"-out":            "write exports into DIR instead of stdout",
		"timeline":        "print the timeline table",
		"validate":        "print structural warnings",
		"examples":        "list bundled examples",
		"tap":             "open a starlark REPL over program, segments and warnings",
		"export-examples": "export every bundled example",
		"at":              "print channel states at NS nanoseconds",
	} {
		cmds.GlobalExecutor.Describe(name, desc)
	}
}

type Options struct {
	Ref            string
	Out            string
	Timeline       bool
	Validate       bool
	Examples       bool
	Tap            bool
	ExportExamples bool
	At             []float64
}

var ErrAmbiguousSource = errors.New("more than one of -file, -example and -url given")

func (Module) Options() Options {
	ref, _ := sourceRef()
	return Options{
		Ref:            ref,
		Out:            *outFlag,
		Timeline:       *timelineCmd,
		Validate:       *validateCmd,
		Examples:       *examplesCmd,
		Tap:            *tapCmd,
		ExportExamples: *exportExamplesCmd,
		At:             *atTimes,
	}
}

func sourceRef() (string, error) {
	var refs []string
	if *fileFlag != "" {
		refs = append(refs, *fileFlag)
	}
	if *exampleFlag != "" {
		refs = append(refs, sources.ExamplePrefix+*exampleFlag)
	}
	if *urlFlag != "" {
		refs = append(refs, *urlFlag)
	}
	switch len(refs) {
	case 0:
		return "", nil
	case 1:
		return refs[0], nil
	}
	return "", ErrAmbiguousSource
}

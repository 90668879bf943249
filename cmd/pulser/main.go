package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/pulser/cmds"
	"github.com/reusee/pulser/configs"
	"github.com/reusee/pulser/modes"
)

func main() {
	cmds.Execute(os.Args[1:])

	if _, err := sourceRef(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		loader configs.Loader,
	) {
		// config files are parsed lazily; surface schema errors first
		_, err := loader.Paths()
		ce(err)
	})

	scope.Call(func(
		run Run,
	) {
		if err := run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	})
}

func ce(err error) {
	if err != nil {
		panic(err)
	}
}

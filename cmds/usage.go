package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	writeCommands(tw, p.commands, 0)
	tw.Flush()
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	// aliases share one *Command
	names := make(map[*Command][]string)
	var order []*Command
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		command := commands[name]
		if command == nil {
			continue
		}
		if _, ok := names[command]; !ok {
			order = append(order, command)
		}
		names[command] = append(names[command], name)
	}

	for _, command := range order {
		fmt.Fprintf(w, "%s%s\t%s\n",
			strings.Repeat("  ", depth),
			strings.Join(names[command], ", "),
			command.Description,
		)
		if len(command.Subs) > 0 {
			writeCommands(w, command.Subs, depth+1)
		}
	}
}

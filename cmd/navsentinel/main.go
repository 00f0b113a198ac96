package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	register()
	flag.CommandLine.Parse(withDefaultCommand(os.Args[1:]))
	os.Exit(int(subcommands.Execute(context.Background())))
}

func register() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&watchCmd{}, "")
	subcommands.Register(&onceCmd{}, "")
	subcommands.Register(&lastCmd{}, "")
}

// withDefaultCommand routes "navsentinel 10000 120 3600" and a bare
// "navsentinel" to the watch command.
func withDefaultCommand(args []string) []string {
	if len(args) > 0 && isCommand(args[0]) {
		return args
	}
	return append([]string{"watch"}, args...)
}

func isCommand(name string) bool {
	found := false
	subcommands.DefaultCommander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}

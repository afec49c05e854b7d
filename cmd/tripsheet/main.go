// Command tripsheet inspects exported trip sheets and member rosters from
// the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/mmynk/tripsheet/pkg/logging"
)

// commands lists every registered subcommand.
var commands = []subcommands.Command{
	&summaryCmd{},
	&rosterCmd{},
	&tagCmd{},
}

func main() {
	logging.Setup()
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/tripsheet/internal/snapshot"
)

type tagCmd struct {
	file string
}

func (*tagCmd) Name() string     { return "tag" }
func (*tagCmd) Synopsis() string { return "print the export file name of a sheet" }
func (*tagCmd) Usage() string {
	return `tripsheet tag -f <sheet.json>

  Prints the YYYY_MM_DD_Location.json name the sheet exports under.
`
}

func (c *tagCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Exported sheet.")
}

func (c *tagCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := readSheet(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sheet: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(snapshot.FileName(s.Trip))
	return subcommands.ExitSuccess
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/mmynk/tripsheet/internal/sources"
)

type rosterCmd struct {
	source  string
	timeout time.Duration
}

func (*rosterCmd) Name() string     { return "roster" }
func (*rosterCmd) Synopsis() string { return "list the member names parsed from a roster" }
func (*rosterCmd) Usage() string {
	return `tripsheet roster -f <members.csv|url>

  Parses the first column of a roster file or URL and prints the
  deduplicated, sorted names one per line.
`
}

func (c *rosterCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "f", "members.csv", "Roster file path or http(s) URL.")
	f.DurationVar(&c.timeout, "timeout", sources.DefaultTimeout, "Fetch timeout for URLs.")
}

func (c *rosterCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names, err := sources.NewLoader(c.timeout).LoadRoster(ctx, c.source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading roster: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return subcommands.ExitSuccess
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/mmynk/tripsheet/internal/calculator"
	"github.com/mmynk/tripsheet/internal/ledger"
	"github.com/mmynk/tripsheet/internal/snapshot"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	file string
	raw  bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display fees and balances of an exported sheet" }
func (*summaryCmd) Usage() string {
	return `tripsheet summary -f <sheet.json> [-raw]

  Recomputes an exported sheet and prints each named participant's fee,
  contributions and balance, followed by the per-expense totals.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Exported sheet to summarise.")
	f.BoolVar(&c.raw, "raw", false, "Print plain markdown instead of rendering it.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := readSheet(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sheet: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderSummary(s)
	if c.raw {
		fmt.Print(md)
	} else {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}

// renderSummary writes the computed sheet as markdown.
func renderSummary(s *ledger.State) string {
	var b strings.Builder
	r := s.Result()

	fmt.Fprintf(&b, "# %s\n\n", snapshot.Tag(s.Trip))
	if s.Trip.Leader != "" {
		fmt.Fprintf(&b, "Leader: %s  \n", s.Trip.Leader)
	}
	if s.Trip.Clerk != "" {
		fmt.Fprintf(&b, "Clerk: %s  \n", s.Trip.Clerk)
	}
	b.WriteString("\n| Participant | Fee | Paid | Balance | Breakdown |\n|---|---:|---:|---:|---|\n")
	for _, p := range r.Participants {
		if !p.Active {
			continue
		}
		var items []string
		for _, e := range p.Breakdown {
			items = append(items, e.Expense+" "+calculator.Dollars(e.Amount))
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			p.Name,
			calculator.Dollars(p.Fee),
			calculator.Dollars(p.Contributions),
			calculator.BalanceLabel(p.Balance),
			strings.Join(items, ", "),
		)
	}

	b.WriteString("\n| Expense | Total | Consumers | Share |\n|---|---:|---:|---:|\n")
	for _, e := range r.Expenses {
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n",
			e.Name, calculator.Dollars(e.Total), e.ConsumerCount, calculator.Dollars(e.Share))
	}

	fmt.Fprintf(&b, "\n**Total fees:** %s  \n", calculator.Dollars(r.TotalFees))
	fmt.Fprintf(&b, "**Club income:** %s  \n", calculator.Dollars(r.ClubIncome))
	if label := calculator.BalanceLabel(r.TotalBalance); label != "" {
		fmt.Fprintf(&b, "**Depreciation:** %s  \n", label)
	}
	if dups := s.DuplicateNames(); len(dups) > 0 {
		fmt.Fprintf(&b, "\n> Duplicate names: %s\n", strings.Join(dups, ", "))
	}
	return b.String()
}

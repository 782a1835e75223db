package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vmeylan/oxfun-lp-vault-analysis/renderer"
)

type tableCmd struct {
	records bool
}

func (*tableCmd) Name() string     { return "table" }
func (*tableCmd) Synopsis() string { return "display the per-day PNL details table" }
func (*tableCmd) Usage() string {
	return `oxvault table [-records]

  Displays the aggregated per-day PNL details, most recent day first.
  With -records, shows the normalized snapshot rows instead, including
  the optional balance, USD value, volume and fee columns.
`
}

func (c *tableCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.records, "records", false, "Show raw normalized records instead of daily aggregates.")
}

func (c *tableCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.records {
		ledger, err := LoadSnapshot()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RecordsMarkdown(ledger))
		return subcommands.ExitSuccess
	}

	report, err := BuildReport()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AggregatesMarkdown(report))
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	vault "github.com/vmeylan/oxfun-lp-vault-analysis"
)

type fetchCmd struct {
	endpoint string
}

func (*fetchCmd) Name() string { return "fetch" }
func (*fetchCmd) Synopsis() string {
	return "download the vault's raw daily PNL rows into today's snapshot file"
}
func (*fetchCmd) Usage() string {
	return `oxvault fetch [-endpoint <url>]

  Downloads the vault's PNL table from the remote JSON endpoint and
  writes it as today's flat CSV snapshot. Responses are disk-cached
  until the end of the day, so re-running fetch is cheap.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.endpoint, "endpoint", "", "Override the snapshot endpoint URL.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	endpoint := cfg.Source.Endpoint
	if c.endpoint != "" {
		endpoint = c.endpoint
	}

	header, rows, err := vault.FetchSnapshot(vault.DailyClient(), endpoint)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	path := SnapshotPath()
	if err := vault.WriteSnapshot(path, header, rows); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Fetched %d rows into %s\n", len(rows), path)
	return subcommands.ExitSuccess
}

// Package cmd implements the CLI application to analyse the vault's
// PNL ledger.
package cmd

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/google/subcommands"
	vault "github.com/vmeylan/oxfun-lp-vault-analysis"
	"github.com/vmeylan/oxfun-lp-vault-analysis/date"
)

// Commands are all the subcommands of the application, in display
// order. A main package registers them all and executes the selected
// one.
var Commands = []subcommands.Command{
	&fetchCmd{},
	&reportCmd{},
	&summaryCmd{},
	&tableCmd{},
	&exportCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "data", "Root directory holding one snapshot directory per day")
var snapshotFile = flag.String("snapshot", "", "Path to the snapshot CSV file (defaults to <data-dir>/<today>/oxfun_data.csv)")
var configFile = flag.String("config", "", "Path to an optional YAML configuration file")

const snapshotName = "oxfun_data.csv"

// SnapshotDir returns today's snapshot directory.
func SnapshotDir() string {
	return filepath.Join(*dataDir, date.Today().String())
}

// SnapshotPath returns the snapshot file the pipeline reads, either the
// -snapshot override or today's default location.
func SnapshotPath() string {
	if *snapshotFile != "" {
		return *snapshotFile
	}
	return filepath.Join(SnapshotDir(), snapshotName)
}

// LoadSnapshot loads and normalizes the snapshot file into a ledger.
func LoadSnapshot() (*vault.Ledger, error) {
	l, err := vault.LoadLedger(SnapshotPath())
	if err != nil {
		return nil, fmt.Errorf("cannot load snapshot (did you run 'fetch' first?): %w", err)
	}
	return l, nil
}

// BuildReport runs the whole pipeline on the current snapshot.
func BuildReport() (*vault.Report, error) {
	l, err := LoadSnapshot()
	if err != nil {
		return nil, err
	}
	return vault.NewReport(l), nil
}

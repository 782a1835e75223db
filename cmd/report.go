package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/vmeylan/oxfun-lp-vault-analysis/renderer"
)

type reportCmd struct {
	outputDir string
}

func (*reportCmd) Name() string { return "report" }
func (*reportCmd) Synopsis() string {
	return "generate the HTML performance analysis report and the cleaned CSV"
}
func (*reportCmd) Usage() string {
	return `oxvault report [-o <dir>]

  Runs the full analysis on the current snapshot and writes the
  standalone HTML report (charts, statistics, details table) plus the
  cleaned, aggregated CSV next to the snapshot file.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "", "Output directory for the report (defaults to the snapshot directory)")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := BuildReport()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if report.IsEmpty() {
		fmt.Println("The snapshot is empty, nothing to report.")
		return subcommands.ExitSuccess
	}

	outDir := c.outputDir
	if outDir == "" {
		outDir = SnapshotDir()
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		return subcommands.ExitFailure
	}

	htmlPath := filepath.Join(outDir, "pnl_analysis_report.html")
	htmlFile, err := os.Create(htmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create report file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer htmlFile.Close()
	if err := renderer.ComposeHTML(htmlFile, report); err != nil {
		fmt.Fprintf(os.Stderr, "failed to compose report: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("HTML PNL analysis report saved to %s\n", htmlPath)

	csvPath := filepath.Join(outDir, "oxfun_data_cleaned.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create cleaned csv: %v\n", err)
		return subcommands.ExitFailure
	}
	defer csvFile.Close()
	if err := report.WriteCSV(csvFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write cleaned csv: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Cleaned data saved to %s\n", csvPath)

	return subcommands.ExitSuccess
}

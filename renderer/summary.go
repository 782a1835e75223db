// Package renderer composes the vault report for its display surfaces:
// markdown for the terminal, plotly figure JSON and a standalone HTML
// document for publishing.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	vault "github.com/vmeylan/oxfun-lp-vault-analysis"
)

// SummaryMarkdown renders the report statistics headline as a markdown
// document.
func SummaryMarkdown(r *vault.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("OXFUN LP Vault Performance on %s", r.Generated))

	if r.IsEmpty() {
		doc.PlainText("The snapshot contains no records.")
		return doc.String()
	}

	doc.PlainText(r.Headline())

	s := r.Stats
	doc.H2("Cumulative PNL")
	doc.Table(md.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Last", vault.FormatOX(s.Last)},
			{"Max", vault.FormatOX(s.Max)},
			{"Min", vault.FormatOX(s.Min)},
			{"Median", vault.FormatOX(s.Median)},
		},
	})

	doc.H2("Days Since Inception")
	doc.Table(md.TableSet{
		Header: []string{"Cumulative PNL", "Days", "Share"},
		Rows: [][]string{
			{"Positive", fmt.Sprintf("%d", s.PositiveDays), s.PositivePercent.String()},
			{"Negative", fmt.Sprintf("%d", s.NegativeDays), s.NegativePercent.String()},
		},
	})

	return doc.String()
}

// AggregatesMarkdown renders the per-day details table, most recent day
// first, every value through the shared formatter.
func AggregatesMarkdown(r *vault.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("PNL Details")

	table := md.TableSet{
		Header: []string{"Date", "PNL (OX)", "Cumulative PNL (OX)"},
	}
	for i := len(r.Aggregates) - 1; i >= 0; i-- {
		a := r.Aggregates[i]
		table.Rows = append(table.Rows, []string{
			a.Date.String(),
			vault.FormatOX(a.PNL),
			vault.FormatOX(a.Cumulative),
		})
	}
	doc.Table(table)

	return doc.String()
}

// RecordsMarkdown renders the normalized snapshot rows with their
// optional columns, most recent day first, the way the cleaned data
// preview shows them.
func RecordsMarkdown(l *vault.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Snapshot Records")

	table := md.TableSet{
		Header: []string{"Date", "PNL (OX)", "OX Balance", "OX Value (USD)", "OX Perps Volume", "Fees"},
	}
	records := l.Records()
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		row := []string{rec.Date.String(), vault.FormatOX(rec.PNL)}
		row = append(row, optional(rec.Balance.Valid, func() string { return vault.FormatOX(rec.Balance.Decimal) }))
		row = append(row, optional(rec.ValueUSD.Valid, func() string { return vault.FormatUSD(rec.ValueUSD.Decimal) }))
		row = append(row, optional(rec.Volume.Valid, func() string { return vault.FormatOX(rec.Volume.Decimal) }))
		row = append(row, optional(rec.Fees.Valid, func() string { return vault.FormatFees(rec.Fees.Decimal) }))
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	return doc.String()
}

func optional(valid bool, format func() string) string {
	if !valid {
		return "-"
	}
	return format()
}

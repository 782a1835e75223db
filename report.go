package vault

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/vmeylan/oxfun-lp-vault-analysis/date"
)

// Report is the computed output of one pipeline run: the cumulative
// daily series, its area-segment decomposition and summary statistics.
// It is built once per snapshot and immutable thereafter; rendering
// failures downstream never touch it.
type Report struct {
	Generated  date.Date
	Aggregates []DailyAggregate
	Segments   []Segment
	Stats      Stats
	MaxAbs     decimal.Decimal
}

// NewReport runs the whole analysis on a normalized ledger. The ledger
// records are consumed by aggregation and not retained. An empty ledger
// produces an empty report: no aggregates, no segments, zero
// statistics.
func NewReport(l *Ledger) *Report {
	aggs := Aggregate(l.Records())
	maxAbs := MaxAbsCumulative(aggs)
	return &Report{
		Generated:  date.Today(),
		Aggregates: aggs,
		Segments:   BuildSegments(aggs, maxAbs),
		Stats:      NewStats(aggs),
		MaxAbs:     maxAbs,
	}
}

// IsEmpty reports whether the snapshot held no records; consumers treat
// this as a no-op producing no chart output.
func (r *Report) IsEmpty() bool { return len(r.Aggregates) == 0 }

// Inception returns the first recorded trading day.
func (r *Report) Inception() date.Date {
	if r.IsEmpty() {
		return date.Date{}
	}
	return r.Aggregates[0].Date
}

// DaysSinceInception returns the number of calendar days between the
// first recorded day and the report generation day.
func (r *Report) DaysSinceInception() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Generated.Sub(r.Inception())
}

// Headline is the report's one-line summary, e.g.
// "$OX 1.23m cumulative PNL since inception 2024-06-01 (90 days ago)".
func (r *Report) Headline() string {
	return fmt.Sprintf("%s cumulative PNL since inception %s (%d days ago)",
		FormatOX(r.Stats.Last), r.Inception(), r.DaysSinceInception())
}

// Title is the area chart's statistics title, carrying the max, min and
// median cumulative values and the positive/negative day counts since
// inception.
func (r *Report) Title() string {
	s := r.Stats
	return fmt.Sprintf(
		"OX Cumulative PNL Analysis: Max: %s, Min: %s, Median: %s. Positive %d days (%s of the time) and Negative %d days (%s of the time) since inception.",
		FormatOX(s.Max), FormatOX(s.Min), FormatOX(s.Median),
		s.PositiveDays, s.PositivePercent, s.NegativeDays, s.NegativePercent)
}

// WriteCSV writes the cleaned, aggregated series as a flat CSV with
// exact (unformatted) decimal values, one row per trading day.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "PNL (OX)", "Cumulative PNL (OX)"}); err != nil {
		return fmt.Errorf("cannot write cleaned csv header: %w", err)
	}
	for _, a := range r.Aggregates {
		if err := cw.Write([]string{a.Date.String(), a.PNL.String(), a.Cumulative.String()}); err != nil {
			return fmt.Errorf("cannot write cleaned csv row for %s: %w", a.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

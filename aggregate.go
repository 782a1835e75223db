package vault

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/vmeylan/oxfun-lp-vault-analysis/date"
)

// DailyAggregate is one distinct trading day of the cumulative series:
// the day's summed PNL and the running total since inception.
type DailyAggregate struct {
	Date       date.Date
	PNL        decimal.Decimal
	Cumulative decimal.Decimal
}

// Aggregate groups records by date, sums same-day PNL, and computes the
// running cumulative total in chronological order.
//
// The input order is irrelevant: grouping is by exact date equality and
// the output is sorted ascending by date with no duplicates. Summation
// is exact decimal arithmetic; nothing is rounded until display. An
// empty record set yields an empty series.
func Aggregate(records []Record) []DailyAggregate {
	sums := make(map[date.Date]decimal.Decimal, len(records))
	for _, rec := range records {
		sums[rec.Date] = sums[rec.Date].Add(rec.PNL)
	}

	aggs := make([]DailyAggregate, 0, len(sums))
	for d, sum := range sums {
		aggs = append(aggs, DailyAggregate{Date: d, PNL: sum})
	}
	slices.SortFunc(aggs, func(a, b DailyAggregate) int { return a.Date.Compare(b.Date) })

	var running decimal.Decimal
	for i := range aggs {
		running = running.Add(aggs[i].PNL)
		aggs[i].Cumulative = running
	}
	return aggs
}

// MaxAbsCumulative returns the maximum absolute cumulative value of the
// series, the normalization scale for segment opacity. A series whose
// cumulative values are all zero reports 1 so callers never divide by
// zero.
func MaxAbsCumulative(aggs []DailyAggregate) decimal.Decimal {
	max := decimal.Zero
	for _, a := range aggs {
		if abs := a.Cumulative.Abs(); abs.GreaterThan(max) {
			max = abs
		}
	}
	if max.IsZero() {
		return decimal.New(1, 0)
	}
	return max
}

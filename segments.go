package vault

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Sign classifies a segment as an entirely non-negative or entirely
// non-positive portion of the cumulative series.
type Sign int

const (
	Positive Sign = iota
	Negative
)

func (s Sign) String() string {
	if s == Negative {
		return "negative"
	}
	return "positive"
}

// Segment is one shaded region between the zero axis and the cumulative
// line: a closed quadrilateral anchored at zero at both horizontal ends
// and at the cumulative values at the data ends. Segments are derived
// fresh on each render and never persisted.
//
// X coordinates are instants rather than dates because a zero-crossing
// falls between two days: the crossing is kept as the exact
// interpolated time.
type Segment struct {
	X0, X1  time.Time
	Y0, Y1  decimal.Decimal
	Sign    Sign
	Opacity float64 // in [0.2, 1.0]
}

const (
	opacityFloor = 0.2 // keeps faint segments visible
	opacityGain  = 0.8
)

// opacity maps a segment's mean cumulative magnitude onto [0.2, 1.0],
// reaching full intensity as the magnitude approaches the series
// maximum maxAbs.
func opacity(mean, maxAbs decimal.Decimal) float64 {
	o := opacityFloor + opacityGain*mean.Abs().InexactFloat64()/maxAbs.InexactFloat64()
	return min(o, 1.0)
}

// segmentOf builds one same-sign segment between two points of the
// line. Sign and opacity derive from the arithmetic mean of the two
// values; a mean of exactly zero counts as positive.
func segmentOf(x0, x1 time.Time, y0, y1, maxAbs decimal.Decimal) Segment {
	mean := y0.Add(y1).Div(two)
	sign := Positive
	if mean.Sign() < 0 {
		sign = Negative
	}
	return Segment{X0: x0, X1: x1, Y0: y0, Y1: y1, Sign: sign, Opacity: opacity(mean, maxAbs)}
}

var two = decimal.New(2, 0)

// crossingTime interpolates the instant at which the line between
// (t0, y0) and (t1, y1) reaches zero. Callers guarantee y0*y1 < 0, so
// the denominator is never zero and the result lies strictly between t0
// and t1.
func crossingTime(t0, t1 time.Time, y0, y1 decimal.Decimal) time.Time {
	ratio := y0.Neg().Div(y1.Sub(y0)).InexactFloat64()
	return t0.Add(time.Duration(ratio * float64(t1.Sub(t0))))
}

// BuildSegments walks the ascending cumulative series and decomposes it
// into shaded area segments, splitting every sign-crossing pair at the
// exact interpolated zero-crossing.
//
// maxAbs is the series' maximum absolute cumulative value (see
// MaxAbsCumulative); it normalizes the opacity. A series shorter than
// two points yields no segments.
func BuildSegments(aggs []DailyAggregate, maxAbs decimal.Decimal) []Segment {
	var segments []Segment
	for i := 0; i+1 < len(aggs); i++ {
		t0, t1 := aggs[i].Date.Time(), aggs[i+1].Date.Time()
		y0, y1 := aggs[i].Cumulative, aggs[i+1].Cumulative

		if y0.Mul(y1).Sign() >= 0 {
			// Same sign, including endpoints exactly at zero: one
			// segment spans the full interval.
			segments = append(segments, segmentOf(t0, t1, y0, y1, maxAbs))
			continue
		}

		// The line crosses zero strictly inside the interval: one
		// half-segment on each side of the crossing. A half whose
		// defining endpoint is exactly zero degenerates to nothing,
		// but that cannot happen here since y0*y1 < 0.
		cross := crossingTime(t0, t1, y0, y1)
		if !y0.IsZero() {
			segments = append(segments, segmentOf(t0, cross, y0, decimal.Zero, maxAbs))
		}
		if !y1.IsZero() {
			segments = append(segments, segmentOf(cross, t1, decimal.Zero, y1, maxAbs))
		}
	}
	return segments
}

// Stats are the summary statistics of the cumulative series. Days whose
// cumulative PNL is exactly zero count toward neither the positive nor
// the negative bucket.
type Stats struct {
	Days            int
	PositiveDays    int
	NegativeDays    int
	PositivePercent Percent
	NegativePercent Percent
	Max             decimal.Decimal
	Min             decimal.Decimal
	Median          decimal.Decimal
	Last            decimal.Decimal
}

// NewStats computes the summary statistics of the cumulative series.
// They are defined for any non-empty series, including a single point
// that yields no segments. An empty series yields zero statistics.
func NewStats(aggs []DailyAggregate) Stats {
	s := Stats{Days: len(aggs)}
	if len(aggs) == 0 {
		return s
	}

	values := make([]decimal.Decimal, 0, len(aggs))
	s.Max, s.Min = aggs[0].Cumulative, aggs[0].Cumulative
	for _, a := range aggs {
		v := a.Cumulative
		values = append(values, v)
		switch {
		case v.Sign() > 0:
			s.PositiveDays++
		case v.Sign() < 0:
			s.NegativeDays++
		}
		if v.GreaterThan(s.Max) {
			s.Max = v
		}
		if v.LessThan(s.Min) {
			s.Min = v
		}
	}
	s.PositivePercent = Percent(100 * float64(s.PositiveDays) / float64(s.Days))
	s.NegativePercent = Percent(100 * float64(s.NegativeDays) / float64(s.Days))
	s.Median = median(values)
	s.Last = aggs[len(aggs)-1].Cumulative
	return s
}

// median returns the middle value of the series; for an even length it
// is the mean of the two middle values.
func median(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(two)
}

package vault

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vmeylan/oxfun-lp-vault-analysis/date"
)

func rec(day string, pnl string) Record {
	return Record{Date: date.MustParse(day), PNL: decimal.RequireFromString(pnl)}
}

func TestAggregate(t *testing.T) {
	// The end-to-end grouping scenario: two rows on the second day.
	records := []Record{
		rec("2024-01-01", "100"),
		rec("2024-01-02", "-50"),
		rec("2024-01-02", "20"),
	}
	got := Aggregate(records)

	want := []DailyAggregate{
		{Date: date.MustParse("2024-01-01"), PNL: decimal.New(100, 0), Cumulative: decimal.New(100, 0)},
		{Date: date.MustParse("2024-01-02"), PNL: decimal.New(-30, 0), Cumulative: decimal.New(70, 0)},
	}
	if len(got) != len(want) {
		t.Fatalf("Aggregate yielded %d days, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Date != want[i].Date ||
			!got[i].PNL.Equal(want[i].PNL) ||
			!got[i].Cumulative.Equal(want[i].Cumulative) {
			t.Errorf("day %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	records := []Record{
		rec("2024-01-03", "-7.5"),
		rec("2024-01-01", "100"),
		rec("2024-01-02", "-50"),
		rec("2024-01-02", "20"),
		rec("2024-01-01", "0.25"),
	}
	want := Aggregate(records)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]Record, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		if got := Aggregate(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %d changed the aggregates:\ngot  %+v\nwant %+v", i, got, want)
		}
	}
}

func TestAggregate_PrefixSum(t *testing.T) {
	records := []Record{
		rec("2024-01-01", "1.1"),
		rec("2024-01-02", "2.2"),
		rec("2024-01-03", "-10"),
		rec("2024-01-04", "0.7"),
	}
	aggs := Aggregate(records)

	running := decimal.Zero
	for i, a := range aggs {
		running = running.Add(a.PNL)
		if !a.Cumulative.Equal(running) {
			t.Errorf("cumulative[%d] = %s, want %s", i, a.Cumulative, running)
		}
		if i > 0 && !aggs[i-1].Date.Before(a.Date) {
			t.Errorf("dates not strictly increasing at %d: %s then %s", i, aggs[i-1].Date, a.Date)
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %+v, want empty", got)
	}
}

// TestAggregate_RoundTrip re-aggregates the aggregates' own PNL column
// and expects the same cumulative values: the cumulative sum is
// idempotent once grouping is fixed.
func TestAggregate_RoundTrip(t *testing.T) {
	records := []Record{
		rec("2024-01-01", "100"),
		rec("2024-01-02", "-50"),
		rec("2024-01-02", "20"),
		rec("2024-01-03", "42.42"),
	}
	first := Aggregate(records)

	again := make([]Record, 0, len(first))
	for _, a := range first {
		again = append(again, Record{Date: a.Date, PNL: a.PNL})
	}
	second := Aggregate(again)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-aggregation changed the series:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestMaxAbsCumulative(t *testing.T) {
	aggs := Aggregate([]Record{
		rec("2024-01-01", "10"),
		rec("2024-01-02", "-60"), // cumulative -50, the largest magnitude
		rec("2024-01-03", "70"),  // cumulative 20
	})
	if got := MaxAbsCumulative(aggs); !got.Equal(decimal.New(50, 0)) {
		t.Errorf("MaxAbsCumulative = %s, want 50", got)
	}

	// All-zero series falls back to 1 to avoid division by zero.
	zero := Aggregate([]Record{rec("2024-01-01", "0"), rec("2024-01-02", "0")})
	if got := MaxAbsCumulative(zero); !got.Equal(decimal.New(1, 0)) {
		t.Errorf("MaxAbsCumulative(all zero) = %s, want 1", got)
	}
	if got := MaxAbsCumulative(nil); !got.Equal(decimal.New(1, 0)) {
		t.Errorf("MaxAbsCumulative(empty) = %s, want 1", got)
	}
}

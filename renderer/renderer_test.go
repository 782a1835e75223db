package renderer

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	vault "github.com/vmeylan/oxfun-lp-vault-analysis"
)

const sampleSnapshot = `Date,PNL (OX)
2024-06-01,100
2024-06-02,-300
2024-06-03,500
`

func sampleReport(t *testing.T) *vault.Report {
	t.Helper()
	l, err := vault.DecodeLedger(strings.NewReader(sampleSnapshot))
	if err != nil {
		t.Fatal(err)
	}
	return vault.NewReport(l)
}

func TestXcoord(t *testing.T) {
	midnight := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := xcoord(midnight); got != "2024-06-01" {
		t.Errorf("xcoord(midnight) = %q, want plain date", got)
	}
	crossing := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	if got := xcoord(crossing); got != "2024-06-01 08:30:00" {
		t.Errorf("xcoord(crossing) = %q, want full timestamp", got)
	}
}

func TestFillColor(t *testing.T) {
	pos := vault.Segment{Sign: vault.Positive, Opacity: 0.6}
	if got := fillColor(pos); got != "rgba(0,255,0,0.60)" {
		t.Errorf("positive fill = %q", got)
	}
	neg := vault.Segment{Sign: vault.Negative, Opacity: 1.0}
	if got := fillColor(neg); got != "rgba(255,0,0,1.00)" {
		t.Errorf("negative fill = %q", got)
	}
}

func TestShapePath(t *testing.T) {
	x0 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	x1 := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	full := vault.Segment{X0: x0, X1: x1, Y0: decimal.New(100, 0), Y1: decimal.New(40, 0)}
	want := "M 2024-06-01,0 L 2024-06-01,100 L 2024-06-02,40 L 2024-06-02,0 Z"
	if got := shapePath(full); got != want {
		t.Errorf("quadrilateral path = %q, want %q", got, want)
	}

	// An endpoint on the zero line collapses into its anchor.
	triangle := vault.Segment{X0: x0, X1: x1, Y0: decimal.New(100, 0), Y1: decimal.Zero}
	want = "M 2024-06-01,0 L 2024-06-01,100 L 2024-06-02,0 Z"
	if got := shapePath(triangle); got != want {
		t.Errorf("triangle path = %q, want %q", got, want)
	}
}

func TestAreaFigure(t *testing.T) {
	r := sampleReport(t)
	raw, err := AreaFigure(r)
	if err != nil {
		t.Fatal(err)
	}

	var fig figure
	if err := json.Unmarshal(raw, &fig); err != nil {
		t.Fatalf("figure is not valid JSON: %v", err)
	}
	// The cumulative line plus the two legend swatches.
	if len(fig.Data) != 3 {
		t.Fatalf("area figure has %d traces, want 3", len(fig.Data))
	}

	shapes, ok := fig.Layout["shapes"].([]any)
	if !ok {
		t.Fatalf("layout has no shapes: %T", fig.Layout["shapes"])
	}
	if len(shapes) != len(r.Segments) {
		t.Errorf("figure has %d shapes, want one per segment (%d)", len(shapes), len(r.Segments))
	}
	for i, s := range shapes {
		shape := s.(map[string]any)
		path, _ := shape["path"].(string)
		if !strings.HasPrefix(path, "M ") || !strings.HasSuffix(path, "Z") {
			t.Errorf("shape %d path %q is not a closed path", i, path)
		}
		fill, _ := shape["fillcolor"].(string)
		if !strings.HasPrefix(fill, "rgba(") {
			t.Errorf("shape %d fillcolor = %q", i, fill)
		}
	}
}

func TestPNLFigure(t *testing.T) {
	r := sampleReport(t)
	raw, err := PNLFigure(r)
	if err != nil {
		t.Fatal(err)
	}

	var fig figure
	if err := json.Unmarshal(raw, &fig); err != nil {
		t.Fatalf("figure is not valid JSON: %v", err)
	}
	// Bars, cumulative line and the dotted zero line.
	if len(fig.Data) != 3 {
		t.Fatalf("pnl figure has %d traces, want 3", len(fig.Data))
	}

	marker := fig.Data[0]["marker"].(map[string]any)
	colors := marker["color"].([]any)
	want := []string{"green", "red", "green"}
	for i, c := range colors {
		if c != want[i] {
			t.Errorf("bar %d color = %v, want %s", i, c, want[i])
		}
	}
	if fig.Data[1]["yaxis"] != "y2" {
		t.Errorf("cumulative line is not on the right axis: %v", fig.Data[1]["yaxis"])
	}
}

func TestSummaryMarkdown(t *testing.T) {
	r := sampleReport(t)
	out := SummaryMarkdown(r)

	for _, want := range []string{
		"# OXFUN LP Vault Performance on " + r.Generated.String(),
		r.Headline(),
		"## Cumulative PNL",
		"| Last",
		"## Days Since Inception",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary misses %q:\n%s", want, out)
		}
	}
}

func TestSummaryMarkdown_Empty(t *testing.T) {
	l, err := vault.DecodeLedger(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	out := SummaryMarkdown(vault.NewReport(l))
	if !strings.Contains(out, "no records") {
		t.Errorf("empty summary = %q", out)
	}
}

func TestAggregatesMarkdown_MostRecentFirst(t *testing.T) {
	out := AggregatesMarkdown(sampleReport(t))
	first := strings.Index(out, "2024-06-03")
	last := strings.Index(out, "2024-06-01")
	if first == -1 || last == -1 || first > last {
		t.Errorf("details table is not most recent first:\n%s", out)
	}
}

func TestComposeHTML(t *testing.T) {
	r := sampleReport(t)
	var buf strings.Builder
	if err := ComposeHTML(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"plotly",
		r.Headline(),
		"2024-06-01",
		"2024-06-03",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html report misses %q", want)
		}
	}
}

package renderer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	vault "github.com/vmeylan/oxfun-lp-vault-analysis"
)

// This file composes the plotly figure configurations consumed by the
// HTML report. A figure is the {data, layout} pair plotly.js expects;
// the shaded area decomposition travels as layout shapes, one closed
// path per segment.

type figure struct {
	Data   []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
}

// xcoord formats a segment time for plotly: plain date for day
// boundaries, full timestamp for interpolated crossing instants.
func xcoord(t time.Time) string {
	if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// fillColor is the segment's rgba fill: green above zero, red below,
// alpha from the magnitude-scaled opacity.
func fillColor(s vault.Segment) string {
	if s.Sign == vault.Negative {
		return fmt.Sprintf("rgba(255,0,0,%.2f)", s.Opacity)
	}
	return fmt.Sprintf("rgba(0,255,0,%.2f)", s.Opacity)
}

// shapePath builds the closed path of one segment: anchored at the zero
// line at both horizontal ends and at the cumulative value at the data
// ends. A data end sitting exactly on zero collapses into its anchor,
// turning the quadrilateral into a triangle.
func shapePath(s vault.Segment) string {
	x0, x1 := xcoord(s.X0), xcoord(s.X1)
	points := []string{fmt.Sprintf("M %s,0", x0)}
	if !s.Y0.IsZero() {
		points = append(points, fmt.Sprintf("L %s,%s", x0, s.Y0))
	}
	if !s.Y1.IsZero() {
		points = append(points, fmt.Sprintf("L %s,%s", x1, s.Y1))
	}
	points = append(points, fmt.Sprintf("L %s,0 Z", x1))
	return strings.Join(points, " ")
}

func segmentShapes(segments []vault.Segment) []map[string]any {
	shapes := make([]map[string]any, 0, len(segments))
	for _, s := range segments {
		shapes = append(shapes, map[string]any{
			"type":      "path",
			"path":      shapePath(s),
			"fillcolor": fillColor(s),
			"line":      map[string]any{"width": 0},
			"layer":     "below",
			"xref":      "x",
			"yref":      "y",
		})
	}
	return shapes
}

// series extracts the plot arrays of the aggregated series.
func series(aggs []vault.DailyAggregate) (dates []string, pnl, cumulative []float64) {
	for _, a := range aggs {
		dates = append(dates, a.Date.String())
		pnl = append(pnl, a.PNL.InexactFloat64())
		cumulative = append(cumulative, a.Cumulative.InexactFloat64())
	}
	return dates, pnl, cumulative
}

// AreaFigure composes the cumulative PNL area chart: the cumulative
// line plus one shaded shape per area segment, titled with the series
// statistics.
func AreaFigure(r *vault.Report) ([]byte, error) {
	dates, _, cumulative := series(r.Aggregates)

	fig := figure{
		Data: []map[string]any{
			{
				"x":             dates,
				"y":             cumulative,
				"mode":          "lines+markers",
				"name":          "Cumulative PNL (OX)",
				"line":          map[string]any{"color": "blue", "width": 2},
				"hovertemplate": "Date: %{x}<br>Cumulative PNL: $OX %{y:,.0f}<extra></extra>",
			},
			// Dummy traces explain the area colors in the legend.
			legendSwatch("rgba(0,255,0,0.5)", "Positive Cumulative $OX PNL Area"),
			legendSwatch("rgba(255,0,0,0.5)", "Negative Cumulative $OX PNL Area"),
		},
		Layout: map[string]any{
			"title":  map[string]any{"text": r.Title()},
			"xaxis":  map[string]any{"title": "Date", "tickformat": "%Y-%m-%d", "tickangle": 45},
			"yaxis":  map[string]any{"title": "Cumulative PNL (OX)"},
			"height": 900,
			"shapes": segmentShapes(r.Segments),
			"legend": map[string]any{
				"x": 0.5, "y": 1, "xanchor": "center", "yanchor": "top",
				"bgcolor": "rgba(255,255,255,0.5)",
			},
		},
	}
	return json.Marshal(fig)
}

func legendSwatch(color, name string) map[string]any {
	return map[string]any{
		"x":    []any{nil},
		"y":    []any{nil},
		"mode": "lines",
		"line": map[string]any{"color": color, "width": 10},
		"name": name,
	}
}

// PNLFigure composes the dual-axis chart: daily PNL bars (green/red by
// sign) on the left axis, the cumulative line and its dotted zero line
// on the right axis.
func PNLFigure(r *vault.Report) ([]byte, error) {
	dates, pnl, cumulative := series(r.Aggregates)

	colors := make([]string, len(pnl))
	for i, v := range pnl {
		if v >= 0 {
			colors[i] = "green"
		} else {
			colors[i] = "red"
		}
	}

	data := []map[string]any{
		{
			"type":          "bar",
			"x":             dates,
			"y":             pnl,
			"marker":        map[string]any{"color": colors},
			"name":          "Daily PNL",
			"hovertemplate": "Date: %{x}<br>PNL: $OX %{y:,.0f}<extra></extra>",
		},
		{
			"x":             dates,
			"y":             cumulative,
			"mode":          "lines+markers",
			"name":          "Cumulative PNL (OX)",
			"yaxis":         "y2",
			"line":          map[string]any{"color": "blue", "width": 2},
			"hovertemplate": "Date: %{x}<br>Cumulative PNL (OX): $OX %{y:,.0f}<extra></extra>",
		},
	}
	if len(dates) > 0 {
		data = append(data, map[string]any{
			"x":         []string{dates[0], dates[len(dates)-1]},
			"y":         []float64{0, 0},
			"mode":      "lines",
			"name":      "Zero cumulative PNL",
			"line":      map[string]any{"color": "black", "dash": "dot"},
			"yaxis":     "y2",
			"hoverinfo": "skip",
		})
	}

	fig := figure{
		Data: data,
		Layout: map[string]any{
			"title": map[string]any{"text": "Daily and Cumulative $OX PNL Chart: Left axis = Daily $OX PNL (bar chart), Right axis = Cumulative $OX PNL (line chart)"},
			"xaxis": map[string]any{"title": "Date", "tickformat": "%Y-%m-%d", "tickangle": 45},
			"yaxis": map[string]any{
				"title":    "Daily $OX PNL",
				"tickfont": map[string]any{"color": "green"},
			},
			"yaxis2": map[string]any{
				"title":      "Cumulative $OX PNL",
				"tickfont":   map[string]any{"color": "blue"},
				"overlaying": "y",
				"side":       "right",
			},
			"legend": map[string]any{"x": 0.01, "y": 0.99},
			"bargap": 0.2,
			"height": 900,
		},
	}
	return json.Marshal(fig)
}

// HistogramFigure composes the distribution of daily PNL.
func HistogramFigure(r *vault.Report) ([]byte, error) {
	_, pnl, _ := series(r.Aggregates)

	fig := figure{
		Data: []map[string]any{
			{
				"type":          "histogram",
				"x":             pnl,
				"nbinsx":        20,
				"marker":        map[string]any{"color": "orange"},
				"hovertemplate": "Count: %{y}<br>PNL Range: $OX %{x:,.0f}<extra></extra>",
			},
		},
		Layout: map[string]any{
			"title":  map[string]any{"text": "Distribution of Daily PNL (OX)"},
			"xaxis":  map[string]any{"title": "PNL (OX)"},
			"yaxis":  map[string]any{"title": "Count"},
			"bargap": 0.2,
			"height": 900,
		},
	}
	return json.Marshal(fig)
}

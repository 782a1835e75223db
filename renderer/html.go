package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	vault "github.com/vmeylan/oxfun-lp-vault-analysis"
)

//go:embed report.html.tmpl
var templates embed.FS

// tableRow is one display row of the report's details table, every
// value already formatted.
type tableRow struct {
	Date       string
	PNL        string
	Cumulative string
}

// reportPage is the data the HTML template renders.
type reportPage struct {
	Title       string
	Date        string
	Headline    string
	SummaryHTML template.HTML
	AreaJSON    template.JS
	PNLJSON     template.JS
	HistJSON    template.JS
	Rows        []tableRow
}

// ComposeHTML writes the standalone HTML report document: headline,
// summary block, the three plotly charts and the per-day details table
// (most recent first). The page pulls plotly.js and DataTables from
// their CDNs, so it stays a single flat file.
func ComposeHTML(w io.Writer, r *vault.Report) error {
	area, err := AreaFigure(r)
	if err != nil {
		return fmt.Errorf("cannot compose area figure: %w", err)
	}
	pnl, err := PNLFigure(r)
	if err != nil {
		return fmt.Errorf("cannot compose pnl figure: %w", err)
	}
	hist, err := HistogramFigure(r)
	if err != nil {
		return fmt.Errorf("cannot compose histogram figure: %w", err)
	}

	var summary bytes.Buffer
	if err := goldmark.Convert([]byte(SummaryMarkdown(r)), &summary); err != nil {
		return fmt.Errorf("cannot convert summary markdown: %w", err)
	}

	page := reportPage{
		Title:       fmt.Sprintf("OXFUN Vault Performance Analysis Report - %s", r.Generated),
		Date:        r.Generated.String(),
		Headline:    r.Headline(),
		SummaryHTML: template.HTML(summary.String()),
		AreaJSON:    template.JS(area),
		PNLJSON:     template.JS(pnl),
		HistJSON:    template.JS(hist),
	}
	for i := len(r.Aggregates) - 1; i >= 0; i-- {
		a := r.Aggregates[i]
		page.Rows = append(page.Rows, tableRow{
			Date:       a.Date.String(),
			PNL:        vault.FormatOX(a.PNL),
			Cumulative: vault.FormatOX(a.Cumulative),
		})
	}

	content, err := templates.ReadFile("report.html.tmpl")
	if err != nil {
		return fmt.Errorf("cannot read report template: %w", err)
	}
	tmpl, err := template.New("report").Parse(string(content))
	if err != nil {
		return fmt.Errorf("cannot parse report template: %w", err)
	}
	return tmpl.Execute(w, page)
}

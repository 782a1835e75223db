// Package vault analyses the daily profit-and-loss ledger of the OX.FUN
// Liquidity Provider vault.
//
// The pipeline is a synchronous batch: a scraped CSV snapshot is
// normalized into typed records, aggregated into a cumulative daily PNL
// series, decomposed into shaded area segments for charting, and
// rendered through the renderer package. A run either completes or
// fails fast; nothing is persisted besides flat tabular files.
package vault

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vmeylan/oxfun-lp-vault-analysis/date"
)

// ParseError reports a raw field that could not be normalized. It names
// the offending column and raw text so a broken snapshot can be traced
// back to the scraped row.
type ParseError struct {
	Column string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse column %q value %q: %v", e.Column, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RawRecord is one row exactly as scraped: column name to raw string.
// It only exists at the ingestion boundary; everything downstream works
// on Record.
type RawRecord map[string]string

// Record is a fully normalized daily row. Optional columns keep their
// Valid flag unset when the snapshot did not carry them.
type Record struct {
	Date     date.Date
	PNL      decimal.Decimal
	Balance  decimal.NullDecimal
	ValueUSD decimal.NullDecimal
	Volume   decimal.NullDecimal
	Fees     decimal.NullDecimal
}

// amountCleaner strips the decorations the scraped table puts around
// numbers: thousands separators and the quoting they force in CSV.
var amountCleaner = strings.NewReplacer(",", "", `"`, "")

// parseDate normalizes a raw date field. Only the exact "2006-01-02"
// format is accepted.
func parseDate(column, raw string) (date.Date, error) {
	d, err := date.Parse(strings.TrimSpace(raw))
	if err != nil {
		return date.Date{}, &ParseError{Column: column, Raw: raw, Err: err}
	}
	return d, nil
}

// parseAmount normalizes a raw signed-currency field. Thousands
// separators, quote characters and a single leading "+" are stripped;
// the remainder must be a base-10 decimal, optionally negative.
func parseAmount(column, raw string) (decimal.Decimal, error) {
	s := amountCleaner.Replace(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "+")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &ParseError{Column: column, Raw: raw, Err: err}
	}
	return v, nil
}

// parseOptionalAmount is parseAmount for columns the snapshot may omit.
// An absent column yields an invalid NullDecimal; a present but
// unparsable value is still a fatal *ParseError.
func parseOptionalAmount(column string, raw string, ok bool) (decimal.NullDecimal, error) {
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	v, err := parseAmount(column, raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: v, Valid: true}, nil
}

// Schema maps the snapshot's column names onto record fields. It is
// detected once per file from the header row.
type Schema struct {
	Date     string
	PNL      string
	Balance  string // optional, "" when absent
	ValueUSD string
	Volume   string
	Fees     string
}

// DetectSchema identifies the snapshot columns from the header row.
//
// The date column is the first header containing "date"
// (case-insensitive), falling back to the first column: the scraper
// guarantees one of the two, and a wrong guess still fails date
// parsing. The PNL column is required; balance, value, volume and fee
// columns are picked up when present.
func DetectSchema(header []string) (Schema, error) {
	if len(header) == 0 {
		return Schema{}, fmt.Errorf("snapshot has no header row")
	}

	var s Schema
	find := func(substr string) string {
		for _, h := range header {
			if strings.Contains(strings.ToLower(h), substr) {
				return h
			}
		}
		return ""
	}

	s.Date = find("date")
	if s.Date == "" {
		s.Date = header[0]
	}
	s.PNL = find("pnl")
	if s.PNL == "" {
		return Schema{}, fmt.Errorf("snapshot has no PNL column in header %q", header)
	}
	s.Balance = find("balance")
	s.ValueUSD = find("value")
	s.Volume = find("volume")
	s.Fees = find("fee")
	return s, nil
}

// Normalize converts one raw row into a typed Record under the given
// schema. Any unparsable field is a *ParseError; callers abort the
// whole file on the first one.
func (s Schema) Normalize(raw RawRecord) (Record, error) {
	var rec Record
	var err error

	if rec.Date, err = parseDate(s.Date, raw[s.Date]); err != nil {
		return Record{}, err
	}
	if rec.PNL, err = parseAmount(s.PNL, raw[s.PNL]); err != nil {
		return Record{}, err
	}

	optionals := []struct {
		column string
		dst    *decimal.NullDecimal
	}{
		{s.Balance, &rec.Balance},
		{s.ValueUSD, &rec.ValueUSD},
		{s.Volume, &rec.Volume},
		{s.Fees, &rec.Fees},
	}
	for _, o := range optionals {
		if o.column == "" {
			continue
		}
		v, ok := raw[o.column]
		if *o.dst, err = parseOptionalAmount(o.column, v, ok); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

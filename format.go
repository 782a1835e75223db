package vault

import (
	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// This file is the single formatting routine shared by every display
// surface: cumulative totals, per-day totals, axis labels and headline
// text all go through Format so the report stays visually consistent.

var (
	thousand = decimal.New(1, 3)
	million  = decimal.New(1, 6)
)

// Format renders a value as a compact human string:
//
//	|v| >= 1,000,000  ->  millions with two decimals and "m": "1.23m"
//	|v| >= 1,000      ->  whole thousands and "k":            "3k"
//	otherwise         ->  the rounded integer:                "999"
//
// A leading "-" precedes the magnitude of negative values; positive
// values carry no "+". Rounding is half away from zero (the
// shopspring/decimal default), so 2500 formats as "3k".
func Format(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
	}
	abs := v.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return sign + abs.Div(million).StringFixed(2) + "m"
	case abs.GreaterThanOrEqual(thousand):
		return sign + abs.Div(thousand).Round(0).String() + "k"
	default:
		return sign + abs.Round(0).String()
	}
}

// FormatOX is Format with the vault's token label, the way every report
// surface displays amounts: "$OX 1.23m", "-$OX 5k".
func FormatOX(v decimal.Decimal) string {
	if v.IsNegative() {
		return "-$OX " + Format(v.Abs())
	}
	return "$OX " + Format(v)
}

// FormatFees renders a fee total comma-grouped without suffix, as the
// report's details table displays it: "$OX 1,234". The fractional part
// is truncated.
func FormatFees(v decimal.Decimal) string {
	return "$OX " + humanize.Comma(v.IntPart())
}

// FormatUSD renders the vault's USD valuation with the standard USD
// presentation: "$1,234.56".
func FormatUSD(v decimal.Decimal) string {
	cur := money.New(0, money.USD).Currency()
	return cur.Formatter().Format(v.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

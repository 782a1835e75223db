package vault

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"999.49", "999"},
		{"999.5", "1000"},
		{"1000", "1k"},
		{"2500", "3k"}, // half away from zero
		{"2499.99", "2k"},
		{"-5000", "-5k"},
		{"999999", "1000k"},
		{"1000000", "1.00m"},
		{"1234567", "1.23m"},
		{"-1234567", "-1.23m"},
		{"12345678.9", "12.35m"},
	}
	for _, c := range cases {
		if got := Format(decimal.RequireFromString(c.in)); got != c.want {
			t.Errorf("Format(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatOX(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234567", "$OX 1.23m"},
		{"-5000", "-$OX 5k"},
		{"0", "$OX 0"},
		{"42", "$OX 42"},
	}
	for _, c := range cases {
		if got := FormatOX(decimal.RequireFromString(c.in)); got != c.want {
			t.Errorf("FormatOX(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatFees(t *testing.T) {
	if got := FormatFees(decimal.RequireFromString("1234567.89")); got != "$OX 1,234,567" {
		t.Errorf("FormatFees = %q, want %q", got, "$OX 1,234,567")
	}
	if got := FormatFees(decimal.New(12, 0)); got != "$OX 12" {
		t.Errorf("FormatFees = %q, want %q", got, "$OX 12")
	}
}

func TestFormatUSD(t *testing.T) {
	if got := FormatUSD(decimal.RequireFromString("1234.56")); got != "$1,234.56" {
		t.Errorf("FormatUSD = %q, want %q", got, "$1,234.56")
	}
	if got := FormatUSD(decimal.New(5, 0)); got != "$5.00" {
		t.Errorf("FormatUSD = %q, want %q", got, "$5.00")
	}
}

package vault

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleSnapshot = `Date,PNL (OX),OX Balance,OX Value (USD),OX Perps Volume,Fees
2024-06-03,"-1,200.5","1,998,799.5","17,989.19","5,000,000",120
2024-06-01,+100,"2,000,000","18,000.00","1,000,000",10
2024-06-02,"+1,234","2,001,234","18,011.10","2,500,000",25
`

func TestDecodeLedger(t *testing.T) {
	l, err := DecodeLedger(strings.NewReader(sampleSnapshot))
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}

	// Records keep their order of arrival; the first row is the most
	// recent day, as the scraper writes it.
	first := l.Records()[0]
	if first.Date.String() != "2024-06-03" {
		t.Errorf("first record date = %s, want 2024-06-03", first.Date)
	}
	if !first.PNL.Equal(decimal.RequireFromString("-1200.5")) {
		t.Errorf("first record PNL = %s, want -1200.5", first.PNL)
	}
	if !first.Volume.Valid || !first.Volume.Decimal.Equal(decimal.New(5_000_000, 0)) {
		t.Errorf("first record Volume = %+v, want valid 5000000", first.Volume)
	}
}

func TestDecodeLedger_Empty(t *testing.T) {
	// A completely empty file is an empty ledger, not an error.
	l, err := DecodeLedger(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeLedger(empty): %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}

	// So is a header-only file.
	l, err = DecodeLedger(strings.NewReader("Date,PNL (OX)\n"))
	if err != nil {
		t.Fatalf("DecodeLedger(header only): %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestDecodeLedger_FailFast(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{
			name: "broken date aborts the file",
			in:   "Date,PNL (OX)\n2024-06-01,100\n2024/06/02,50\n2024-06-03,25\n",
		},
		{
			name: "broken pnl aborts the file",
			in:   "Date,PNL (OX)\n2024-06-01,100\n2024-06-02,oops\n",
		},
		{
			name: "missing pnl column",
			in:   "Date,Balance\n2024-06-01,100\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if l, err := DecodeLedger(strings.NewReader(tc.in)); err == nil {
				t.Fatalf("DecodeLedger = %d records, want error", l.Len())
			}
		})
	}
}

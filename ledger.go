package vault

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Ledger holds the fully normalized record set of one snapshot file.
// Records keep their order of arrival; aggregation does not depend on
// it.
type Ledger struct {
	records []Record
}

// Records returns the normalized records in order of arrival.
func (l *Ledger) Records() []Record { return l.records }

// Len returns the number of records in the ledger.
func (l *Ledger) Len() int { return len(l.records) }

// DecodeLedger reads a CSV snapshot from r and normalizes every row.
//
// The first row is the header; the column schema is detected from it
// (see DetectSchema). Normalization is fail-fast: the first unparsable
// field aborts the whole file, since a partially aggregated ledger
// would silently corrupt the cumulative sum. An empty input yields an
// empty ledger, not an error.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot header: %w", err)
	}

	schema, err := DetectSchema(header)
	if err != nil {
		return nil, err
	}

	l := &Ledger{}
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read snapshot row %d: %w", row, err)
		}

		raw := make(RawRecord, len(header))
		for i, h := range header {
			if i < len(fields) {
				raw[h] = fields[i]
			}
		}
		rec, err := schema.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("snapshot row %d: %w", row, err)
		}
		l.records = append(l.records, rec)
	}
	return l, nil
}

// LoadLedger reads and normalizes the snapshot file at path.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot %q: %w", path, err)
	}
	defer f.Close()

	l, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", path, err)
	}
	return l, nil
}

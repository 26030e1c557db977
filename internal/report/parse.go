// internal/report/parse.go
package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinFields is the number of tab-separated columns a report row must carry:
// percent, reads_clade, reads_taxon, rank, tax_id, indented name.
const MinFields = 6

// Skip reasons. ParseLine never fails for any other reason.
var (
	ErrTooFewFields = errors.New("too few fields")
	ErrBadNumber    = errors.New("bad numeric field")
)

// ParseLine turns one raw report line into a Record.
// A non-nil error means the line should be skipped; it wraps ErrTooFewFields
// or ErrBadNumber. Depth is the count of leading spaces in the name column
// divided by two, odd remainders dropped.
func ParseLine(line string) (Record, error) {
	line = strings.TrimSuffix(line, "\n")
	cols := strings.Split(line, "\t")
	if len(cols) < MinFields {
		return Record{}, fmt.Errorf("%w: got %d, want %d", ErrTooFewFields, len(cols), MinFields)
	}

	nameField := cols[5]
	indent := len(nameField) - len(strings.TrimLeft(nameField, " "))

	var (
		rec Record
		err error
	)
	if rec.Percent, err = strconv.ParseFloat(strings.TrimSpace(cols[0]), 64); err != nil {
		return Record{}, fmt.Errorf("%w: percent: %v", ErrBadNumber, err)
	}
	if math.IsNaN(rec.Percent) || math.IsInf(rec.Percent, 0) {
		return Record{}, fmt.Errorf("%w: percent: %q is not finite", ErrBadNumber, strings.TrimSpace(cols[0]))
	}
	if rec.ReadsClade, err = parseCount(cols[1]); err != nil {
		return Record{}, fmt.Errorf("%w: reads_clade: %v", ErrBadNumber, err)
	}
	if rec.ReadsTaxon, err = parseCount(cols[2]); err != nil {
		return Record{}, fmt.Errorf("%w: reads_taxon: %v", ErrBadNumber, err)
	}
	if rec.TaxID, err = parseCount(cols[4]); err != nil {
		return Record{}, fmt.Errorf("%w: tax_id: %v", ErrBadNumber, err)
	}
	rec.Rank = cols[3]
	rec.Name = strings.TrimSpace(nameField)
	rec.Depth = indent / 2
	return rec, nil
}

// parseCount accepts non-negative integers that fit in an int64, the widest
// integer SQLite stores.
func parseCount(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 63)
}

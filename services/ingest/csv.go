package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/meghashyamc/streetsearch/db/searchdb"
)

const byteOrderMark = "\ufeff"

// Localized CSV header names. These are a fixed external contract.
const (
	columnMainName        = "שם ראשי"
	columnTitle           = "תואר"
	columnSecondaryName   = "שם משני"
	columnGroup           = "קבוצה"
	columnAdditionalGroup = "קבוצה נוספת"
	columnType            = "סוג"
	columnCode            = "קוד"
	columnNeighborhood    = "שכונה"
)

var columnSetters = map[string]func(record *searchdb.Record, value string){
	columnMainName:        func(r *searchdb.Record, v string) { r.MainName = v },
	columnTitle:           func(r *searchdb.Record, v string) { r.Title = v },
	columnSecondaryName:   func(r *searchdb.Record, v string) { r.SecondaryName = v },
	columnGroup:           func(r *searchdb.Record, v string) { r.Group = v },
	columnAdditionalGroup: func(r *searchdb.Record, v string) { r.AdditionalGroup = v },
	columnType:            func(r *searchdb.Record, v string) { r.Type = v },
	columnCode:            func(r *searchdb.Record, v string) { r.Code = v },
	columnNeighborhood:    func(r *searchdb.Record, v string) { r.Neighborhood = v },
}

// row is one data line of the file. Exactly one of Record and Err is meaningful.
type row struct {
	Line   int
	Record searchdb.Record
	Err    error
}

// malformedRowError is reported for rows that are skipped. Any other row error
// means the file itself could not be read.
type malformedRowError struct {
	reason string
}

func (e *malformedRowError) Error() string {
	return e.reason
}

type headerMapping []func(record *searchdb.Record, value string)

func readHeader(reader *csv.Reader) (headerMapping, error) {
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	mapping := make(headerMapping, len(header))
	hasMainName := false
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, byteOrderMark)
		}
		name = strings.TrimSpace(name)

		// Unknown columns stay nil and are ignored.
		mapping[i] = columnSetters[name]
		if name == columnMainName {
			hasMainName = true
		}
	}

	if !hasMainName {
		return nil, fmt.Errorf("header has no %q column", columnMainName)
	}

	reader.FieldsPerRecord = len(header)
	return mapping, nil
}

// rows lazily yields the data lines that follow the header. The sequence can be
// consumed only once and stops after the first unrecoverable read error.
func rows(reader *csv.Reader, mapping headerMapping) iter.Seq[row] {
	return func(yield func(row) bool) {
		for {
			fields, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}

			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				if !yield(row{Line: parseErr.StartLine, Err: &malformedRowError{reason: parseErr.Err.Error()}}) {
					return
				}
				continue
			}
			if err != nil {
				yield(row{Err: err})
				return
			}

			line, _ := reader.FieldPos(0)
			record, err := mapping.toRecord(fields)
			if !yield(row{Line: line, Record: record, Err: err}) {
				return
			}
		}
	}
}

func (m headerMapping) toRecord(fields []string) (searchdb.Record, error) {
	record := searchdb.Record{IsDeleted: false}
	for i, value := range fields {
		if setter := m[i]; setter != nil {
			setter(&record, strings.TrimSpace(value))
		}
	}

	if record.MainName == "" {
		return searchdb.Record{}, &malformedRowError{reason: "main name is empty"}
	}

	return record, nil
}

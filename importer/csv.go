package importer

import (
	"encoding/csv"
	"io"
	"strings"
)

// Row is one parsed CSV data row, keyed by header name. A column that
// is missing from a record (short row, or absent from the header) has
// no key at all, which the validators treat differently from an empty
// value.
type Row map[string]string

// Accepts reports whether an uploaded file is taken as CSV: either the
// declared MIME type is text/csv or the filename carries a .csv suffix.
// The suffix match is case-sensitive.
func Accepts(filename, contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(mediaType) == "text/csv" || strings.HasSuffix(filename, ".csv")
}

// parseRows reads a header-keyed CSV stream. Empty lines are skipped
// and rows may be shorter or longer than the header; extra cells are
// dropped. A header-only file yields zero rows and no error.
func parseRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}

		row := make(Row, len(header))
		for i, value := range record {
			if i >= len(header) {
				break
			}
			row[header[i]] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

package letterboxd

import (
	"encoding/csv"
	"errors"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"reelmate/internal/movies"
	"reelmate/internal/services"
)

// Parse reads a Letterboxd export and returns the normalized records in
// file order. Rows that fail normalization (empty title) are dropped
// silently. Structurally malformed input yields an error tagged
// services.ErrParse and no records.
func Parse(r io.Reader) ([]movies.Record, error) {
	// Letterboxd exports occasionally carry a UTF-8 BOM; strip it so the
	// first header cell compares clean.
	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))

	// Default field-count enforcement stays on: a stream whose rows do
	// not line up with the header is malformed, not a partial batch.
	reader := csv.NewReader(decoded)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrParse, "letterboxd", "parse", "empty file", nil)
		}
		return nil, services.Wrap(services.ErrParse, "letterboxd", "parse", "read header", err)
	}

	columns := indexColumns(header)

	var records []movies.Record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrParse, "letterboxd", "parse", "read row", err)
		}

		rec, ok := movies.Normalize(rowFromFields(columns, fields))
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	if records == nil {
		records = []movies.Record{}
	}
	return records, nil
}

// indexColumns maps recognized header names to their positions. Headers
// the exporter added that we do not recognize are ignored.
func indexColumns(header []string) map[string]int {
	recognized := map[string]struct{}{
		movies.ColumnName:        {},
		movies.ColumnYear:        {},
		movies.ColumnRating:      {},
		movies.ColumnURI:         {},
		movies.ColumnWatchedDate: {},
		movies.ColumnDate:        {},
		movies.ColumnRewatch:     {},
		movies.ColumnTags:        {},
	}

	columns := make(map[string]int, len(recognized))
	for i, name := range header {
		if _, ok := recognized[name]; ok {
			columns[name] = i
		}
	}
	return columns
}

func rowFromFields(columns map[string]int, fields []string) movies.Row {
	row := make(movies.Row, len(columns))
	for name, idx := range columns {
		if idx < len(fields) {
			row[name] = fields[idx]
		}
	}
	return row
}

package movies

import (
	"strconv"
	"strings"
)

// Recognized Letterboxd export column names. The exporter has added
// columns over time; anything not listed here is ignored.
const (
	ColumnName        = "Name"
	ColumnYear        = "Year"
	ColumnRating      = "Rating"
	ColumnURI         = "Letterboxd URI"
	ColumnWatchedDate = "Watched Date"
	ColumnDate        = "Date"
	ColumnRewatch     = "Rewatch"
	ColumnTags        = "Tags"
)

// Row holds the raw string values of one export row keyed by column
// name. Values arrive untyped; Normalize decides what they mean.
type Row map[string]string

// Normalize converts a raw row into a Record. The second return value
// is false when the row must be dropped (empty title after trimming).
// Rejection is silent by contract: a malformed row is not an error.
func Normalize(row Row) (Record, bool) {
	title := strings.TrimSpace(row[ColumnName])
	if title == "" {
		return Record{}, false
	}

	rec := Record{
		Title:     title,
		Year:      parseYear(row[ColumnYear]),
		Rating:    parseRating(row[ColumnRating]),
		SourceURI: strings.TrimSpace(row[ColumnURI]),
		// Exact literal match per the export format; "yes" and "true"
		// are not rewatches.
		Rewatch: row[ColumnRewatch] == "Yes",
		Tags:    splitTags(row[ColumnTags]),
	}

	watched := strings.TrimSpace(row[ColumnWatchedDate])
	if watched == "" {
		// Diary exports label the column "Date" instead.
		watched = strings.TrimSpace(row[ColumnDate])
	}
	if watched != "" {
		rec.WatchedDate = &watched
	}

	return rec, true
}

func parseYear(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &year
}

// parseRating passes the value through untouched when numeric. Ratings
// outside the 0-5 scale are accepted as-is; the exporter owns the
// scale, not this parser.
func parseRating(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &rating
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tags = append(tags, strings.TrimSpace(part))
	}
	return tags
}

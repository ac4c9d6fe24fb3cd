package main

import (
	"strconv"
	"strings"

	"reelmate/internal/movies"
)

func movieRows(records []movies.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Title,
			formatYear(rec.Year),
			formatRating(rec.Rating),
			formatWatched(rec.WatchedDate),
			formatRewatch(rec.Rewatch),
			strings.Join(rec.Tags, ", "),
			formatTMDBID(rec.TMDBID),
		})
	}
	return rows
}

var movieHeaders = []string{"Title", "Year", "Rating", "Watched", "Rewatch", "Tags", "TMDB"}

var movieAligns = []columnAlignment{
	alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignRight,
}

func formatYear(year *int) string {
	if year == nil {
		return ""
	}
	return strconv.Itoa(*year)
}

func formatRating(rating *float64) string {
	if rating == nil {
		return ""
	}
	return strconv.FormatFloat(*rating, 'f', -1, 64)
}

func formatWatched(date *string) string {
	if date == nil {
		return ""
	}
	return *date
}

func formatRewatch(rewatch bool) string {
	if rewatch {
		return "yes"
	}
	return ""
}

func formatTMDBID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

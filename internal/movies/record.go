package movies

import (
	"strconv"
	"strings"
)

// Record is one watched film as stored in a user's collection.
// Title and Year form the identity; everything else is descriptive.
// TMDBID, PosterURL, Overview and TMDBRating are populated by
// enrichment and stay nil when no match was found.
type Record struct {
	Title       string   `json:"title"`
	Year        *int     `json:"year"`
	Rating      *float64 `json:"rating"`
	WatchedDate *string  `json:"watchedDate"`
	SourceURI   string   `json:"letterboxdUri,omitempty"`
	Rewatch     bool     `json:"rewatch"`
	Tags        []string `json:"tags"`
	TMDBID      *int64   `json:"tmdbId,omitempty"`
	PosterURL   *string  `json:"poster,omitempty"`
	Overview    *string  `json:"overview,omitempty"`
	TMDBRating  *float64 `json:"tmdbRating,omitempty"`
}

// Key returns the identity key for the record: the lowercased title
// joined with the release year. Two records with equal keys refer to
// the same film regardless of any other field.
func (r Record) Key() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(r.Title))
	b.WriteByte('-')
	if r.Year != nil {
		b.WriteString(strconv.Itoa(*r.Year))
	}
	return b.String()
}

// KeySet builds the set of identity keys present in records. Duplicate
// keys collapse; the set answers membership only.
func KeySet(records []Record) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, rec := range records {
		set[rec.Key()] = struct{}{}
	}
	return set
}

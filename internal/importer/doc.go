// Package importer drives the CSV import pipeline: parse a Letterboxd
// export, enrich the records against TMDB, and persist the result as
// the user's collection in a single write.
package importer

// Package letterboxd parses watch-history CSV exports into movie
// records. Column lookup is header-driven, so the exporter may reorder
// or add columns without breaking the parser.
package letterboxd

// Package movies defines the canonical watch-history record and the
// normalization rules that turn raw Letterboxd export rows into records.
package movies

// Package enrich augments normalized movie records with TMDB metadata.
// Lookups run sequentially in input order behind a token-bucket rate
// limiter; a single failed lookup never aborts the batch.
package enrich

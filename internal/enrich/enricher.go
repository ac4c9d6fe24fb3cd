package enrich

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"reelmate/internal/logging"
	"reelmate/internal/movies"
	"reelmate/internal/tmdb"
)

// NoPosterURL is the sentinel stored when TMDB has no poster for a
// match, or when the lookup missed entirely. Kept as a renderable path
// so stored documents stay displayable.
const NoPosterURL = "/placeholder-poster.jpg"

const (
	defaultLookupTimeout  = 10 * time.Second
	defaultWindowRequests = 40
	defaultWindow         = 10 * time.Second
	defaultBurst          = 10
)

// ProgressFunc receives (completed, total) after every record,
// successful or not. completed is strictly increasing and ends at
// total.
type ProgressFunc func(completed, total int)

// Enricher resolves metadata for batches of records against an
// injected TMDB searcher.
type Enricher struct {
	searcher      tmdb.Searcher
	imageBaseURL  string
	lookupTimeout time.Duration
	limiter       *rate.Limiter
	logger        *slog.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithImageBaseURL sets the base URL poster paths are joined onto.
func WithImageBaseURL(base string) Option {
	return func(e *Enricher) {
		if base != "" {
			e.imageBaseURL = base
		}
	}
}

// WithLookupTimeout bounds each individual TMDB lookup. A timeout is
// treated the same as a miss; it never stalls the batch.
func WithLookupTimeout(timeout time.Duration) Option {
	return func(e *Enricher) {
		if timeout > 0 {
			e.lookupTimeout = timeout
		}
	}
}

// WithRateLimit replaces the default limiter with one allowing
// requests lookups per window, with the given burst.
func WithRateLimit(requests int, window time.Duration, burst int) Option {
	return func(e *Enricher) {
		if requests > 0 && window > 0 && burst > 0 {
			e.limiter = rate.NewLimiter(rate.Every(window/time.Duration(requests)), burst)
		}
	}
}

// WithLogger sets the logger used for per-batch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logging.NewComponentLogger(logger, "enrich")
		}
	}
}

// New constructs an Enricher around the supplied searcher.
func New(searcher tmdb.Searcher, opts ...Option) (*Enricher, error) {
	if searcher == nil {
		return nil, errors.New("enricher requires a searcher")
	}
	e := &Enricher{
		searcher:      searcher,
		lookupTimeout: defaultLookupTimeout,
		limiter:       rate.NewLimiter(rate.Every(defaultWindow/defaultWindowRequests), defaultBurst),
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// EnrichAll resolves metadata for every record, sequentially and in
// input order: output index i corresponds to input index i. Lookup
// misses and transient failures leave the record unenriched and the
// batch continues. Only context cancellation aborts, returning the
// context error.
func (e *Enricher) EnrichAll(ctx context.Context, records []movies.Record, progress ProgressFunc) ([]movies.Record, error) {
	total := len(records)
	enriched := make([]movies.Record, total)

	for i, rec := range records {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		enriched[i] = e.enrichOne(ctx, rec)

		if progress != nil {
			progress(i+1, total)
		}
	}

	return enriched, nil
}

// enrichOne merges the first TMDB match into the record. No match, a
// failed call, or a timed-out call all leave the record unenriched.
func (e *Enricher) enrichOne(ctx context.Context, rec movies.Record) movies.Record {
	lookupCtx, cancel := context.WithTimeout(ctx, e.lookupTimeout)
	defer cancel()

	opts := tmdb.SearchOptions{}
	if rec.Year != nil {
		opts.Year = *rec.Year
	}

	resp, err := e.searcher.SearchMovie(lookupCtx, rec.Title, opts)
	if err != nil {
		e.logger.Debug("lookup failed",
			logging.String("title", rec.Title),
			logging.Error(err),
		)
		return withoutMatch(rec)
	}
	if len(resp.Results) == 0 {
		e.logger.Debug("no match", logging.String("title", rec.Title))
		return withoutMatch(rec)
	}

	// First result is authoritative; no re-ranking at this layer.
	match := resp.Results[0]
	rec.TMDBID = &match.ID
	rec.PosterURL = ptr(e.posterURL(match.PosterPath))
	rec.Overview = &match.Overview
	rec.TMDBRating = &match.VoteAverage
	return rec
}

func (e *Enricher) posterURL(posterPath string) string {
	if posterPath == "" {
		return NoPosterURL
	}
	return e.imageBaseURL + posterPath
}

func withoutMatch(rec movies.Record) movies.Record {
	rec.TMDBID = nil
	rec.PosterURL = ptr(NoPosterURL)
	rec.Overview = nil
	rec.TMDBRating = nil
	return rec
}

func ptr(s string) *string { return &s }

package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"reelmate/internal/enrich"
	"reelmate/internal/importer"
	"reelmate/internal/services"
	"reelmate/internal/testsupport"
	"reelmate/internal/tmdb"
)

const exportCSV = "Date,Name,Year,Letterboxd URI,Rating,Rewatch,Tags,Watched Date\n" +
	"2024-01-01,Heat,1995,https://boxd.it/29Lc,4.5,No,crime,2024-01-01\n" +
	"2024-01-02,Up,2009,https://boxd.it/1sgQ,5,Yes,,2024-01-02\n" +
	"2024-01-03,Obscure Film,1971,https://boxd.it/zzz,,No,,2024-01-03\n"

type scriptedSearcher struct {
	matches map[string]tmdb.Result
	err     error
	calls   int
}

func (s *scriptedSearcher) SearchMovie(_ context.Context, query string, _ tmdb.SearchOptions) (*tmdb.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if result, ok := s.matches[query]; ok {
		return &tmdb.Response{Results: []tmdb.Result{result}, TotalResults: 1}, nil
	}
	return &tmdb.Response{}, nil
}

func newImporter(t *testing.T, searcher tmdb.Searcher, opts ...importer.Option) *importer.Importer {
	t.Helper()

	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	enricher, err := enrich.New(searcher, enrich.WithRateLimit(1000, time.Millisecond, 1000))
	if err != nil {
		t.Fatalf("enrich.New: %v", err)
	}
	imp, err := importer.New(s, enricher, opts...)
	if err != nil {
		t.Fatalf("importer.New: %v", err)
	}
	return imp
}

func TestRunPersistsEnrichedCollection(t *testing.T) {
	searcher := &scriptedSearcher{matches: map[string]tmdb.Result{
		"Heat": {ID: 949, Overview: "A heist crew", PosterPath: "/heat.jpg", VoteAverage: 8.3},
		"Up":   {ID: 14160, Overview: "A flying house", PosterPath: "/up.jpg", VoteAverage: 8.0},
	}}
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	enricher, err := enrich.New(searcher, enrich.WithRateLimit(1000, time.Millisecond, 1000))
	if err != nil {
		t.Fatalf("enrich.New: %v", err)
	}
	imp, err := importer.New(s, enricher)
	if err != nil {
		t.Fatalf("importer.New: %v", err)
	}

	summary, err := imp.Run(context.Background(), "ana", strings.NewReader(exportCSV), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 3 || summary.Matched != 2 || summary.Unmatched != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.BatchID == "" {
		t.Fatal("summary missing batch id")
	}

	stored, err := s.GetMovies(context.Background(), "ana")
	if err != nil {
		t.Fatalf("GetMovies: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("stored %d records, want 3", len(stored))
	}
	if stored[0].TMDBID == nil || *stored[0].TMDBID != 949 {
		t.Fatalf("first record not enriched: %+v", stored[0])
	}
	if stored[2].TMDBID != nil {
		t.Fatalf("unmatched record gained a TMDB id: %+v", stored[2])
	}
	if stored[2].PosterURL == nil || *stored[2].PosterURL != enrich.NoPosterURL {
		t.Fatalf("unmatched record missing placeholder poster: %+v", stored[2])
	}
}

func TestRunReportsProgress(t *testing.T) {
	imp := newImporter(t, &scriptedSearcher{})

	var calls [][2]int
	_, err := imp.Run(context.Background(), "ana", strings.NewReader(exportCSV), func(completed, total int) {
		calls = append(calls, [2]int{completed, total})
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 3 {
		t.Fatalf("progress called %d times, want 3", len(calls))
	}
	if calls[2] != [2]int{3, 3} {
		t.Fatalf("final progress = %v", calls[2])
	}
}

func TestRunRejectsMalformedCSV(t *testing.T) {
	imp := newImporter(t, &scriptedSearcher{})

	_, err := imp.Run(context.Background(), "ana", strings.NewReader("not,a\nletterboxd"), nil)
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestRunAbsorbsLookupErrors(t *testing.T) {
	searcher := &scriptedSearcher{err: errors.New("tmdb unreachable")}
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	enricher, err := enrich.New(searcher, enrich.WithRateLimit(1000, time.Millisecond, 1000))
	if err != nil {
		t.Fatalf("enrich.New: %v", err)
	}
	imp, err := importer.New(s, enricher)
	if err != nil {
		t.Fatalf("importer.New: %v", err)
	}

	summary, err := imp.Run(context.Background(), "ana", strings.NewReader(exportCSV), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Matched != 0 || summary.Unmatched != 3 {
		t.Fatalf("summary = %+v", summary)
	}

	stored, err := s.GetMovies(context.Background(), "ana")
	if err != nil {
		t.Fatalf("GetMovies: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("lookup failures must not drop records, got %d", len(stored))
	}
}

func TestRunCancelledContext(t *testing.T) {
	imp := newImporter(t, &scriptedSearcher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := imp.Run(ctx, "ana", strings.NewReader(exportCSV), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

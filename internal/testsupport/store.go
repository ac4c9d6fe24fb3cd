package testsupport

import (
	"context"
	"testing"

	"reelmate/internal/config"
	"reelmate/internal/movies"
	"reelmate/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// SeedMovies stores a collection for a user, failing the test on error.
func SeedMovies(t testing.TB, s *store.Store, userID string, records []movies.Record) {
	t.Helper()

	if err := s.SaveMovies(context.Background(), userID, records); err != nil {
		t.Fatalf("store.SaveMovies(%s): %v", userID, err)
	}
}

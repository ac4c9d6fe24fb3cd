package store_test

import (
	"context"
	"errors"
	"testing"

	"reelmate/internal/movies"
	"reelmate/internal/services"
	"reelmate/internal/store"
	"reelmate/internal/testsupport"
)

func intPtr(v int) *int { return &v }

func TestSaveAndGetMovies(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	records := []movies.Record{
		{Title: "Heat", Year: intPtr(1995), Tags: []string{"crime"}},
		{Title: "Up", Year: intPtr(2009), Rewatch: true, Tags: []string{}},
	}
	if err := s.SaveMovies(ctx, "user-1", records); err != nil {
		t.Fatalf("SaveMovies: %v", err)
	}

	got, err := s.GetMovies(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetMovies: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Heat" || got[1].Title != "Up" {
		t.Fatalf("unexpected collection: %+v", got)
	}
	if !got[1].Rewatch {
		t.Fatal("rewatch flag lost in round trip")
	}
}

func TestGetMoviesMissingUserIsEmpty(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	got, err := s.GetMovies(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetMovies: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty collection, got %v", got)
	}
}

func TestSaveMoviesReplacesWholesale(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first := []movies.Record{{Title: "Heat", Year: intPtr(1995)}}
	second := []movies.Record{{Title: "Alien", Year: intPtr(1979)}}
	if err := s.SaveMovies(ctx, "user-1", first); err != nil {
		t.Fatalf("SaveMovies: %v", err)
	}
	if err := s.SaveMovies(ctx, "user-1", second); err != nil {
		t.Fatalf("SaveMovies: %v", err)
	}

	got, err := s.GetMovies(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetMovies: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Alien" {
		t.Fatalf("expected last write to win, got %+v", got)
	}
}

func TestProfileAndMoviesMerge(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := s.SaveMovies(ctx, "user-1", []movies.Record{{Title: "Heat", Year: intPtr(1995)}}); err != nil {
		t.Fatalf("SaveMovies: %v", err)
	}
	if err := s.SaveProfile(ctx, "user-1", store.Profile{DisplayName: "Ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	// Profile write must not clobber the collection.
	got, err := s.GetMovies(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetMovies: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("profile write clobbered collection: %+v", got)
	}

	// Collection write must not clobber the profile.
	if err := s.SaveMovies(ctx, "user-1", []movies.Record{{Title: "Up", Year: intPtr(2009)}}); err != nil {
		t.Fatalf("SaveMovies: %v", err)
	}
	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].DisplayName != "Ana" {
		t.Fatalf("collection write clobbered profile: %+v", users)
	}
	if users[0].MovieCount != 1 {
		t.Fatalf("MovieCount = %d", users[0].MovieCount)
	}
}

func TestListUsersOrdered(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	for _, id := range []string{"charlie", "alice", "bob"} {
		if err := s.SaveProfile(ctx, id, store.Profile{DisplayName: id}); err != nil {
			t.Fatalf("SaveProfile(%s): %v", id, err)
		}
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, want := range []string{"alice", "bob", "charlie"} {
		if users[i].UserID != want {
			t.Fatalf("users[%d] = %q, want %q", i, users[i].UserID, want)
		}
	}
}

func TestSaveMoviesRequiresUserID(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	err := s.SaveMovies(context.Background(), "  ", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := s.SaveMovies(ctx, "user-1", []movies.Record{{Title: "Heat", Year: intPtr(1995)}}); err != nil {
		t.Fatalf("SaveMovies: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { reopened.Close() })

	got, err := reopened.GetMovies(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetMovies after reopen: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Heat" {
		t.Fatalf("data lost across reopen: %+v", got)
	}
}

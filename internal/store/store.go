package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"reelmate/internal/config"
	"reelmate/internal/movies"
	"reelmate/internal/services"
)

// Store manages collection persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Profile holds the display attributes supplied by the identity
// provider. The core treats all of it as opaque strings.
type Profile struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL"`
}

// UserSummary describes one stored user for friend discovery.
type UserSummary struct {
	UserID      string    `json:"uid"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	PhotoURL    string    `json:"photoURL"`
	MovieCount  int       `json:"movieCount"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Open initializes or connects to the collection database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "reelmate.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// SaveMovies replaces the user's stored collection wholesale. The
// single-statement upsert keeps the write atomic per user: no reader
// observes a partially replaced collection. Profile fields on the row
// are left untouched.
func (s *Store) SaveMovies(ctx context.Context, userID string, records []movies.Record) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return services.Wrap(services.ErrValidation, "store", "save movies", "user id required", nil)
	}
	if records == nil {
		records = []movies.Record{}
	}

	moviesJSON, err := json.Marshal(records)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "store", "save movies", "marshal collection", err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO users (user_id, movies_json, movie_count, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(user_id) DO UPDATE SET
             movies_json = excluded.movies_json,
             movie_count = excluded.movie_count,
             updated_at  = excluded.updated_at`,
		userID,
		string(moviesJSON),
		len(records),
		timestamp,
	)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "store", "save movies", "", err)
	}
	return nil
}

// GetMovies returns the user's stored collection in stored order. A
// user with no stored collection reads as an empty collection, not an
// error.
func (s *Store) GetMovies(ctx context.Context, userID string) ([]movies.Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, services.Wrap(services.ErrValidation, "store", "get movies", "user id required", nil)
	}

	var moviesJSON sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT movies_json FROM users WHERE user_id = ?", userID,
	).Scan(&moviesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return []movies.Record{}, nil
	}
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "get movies", "", err)
	}
	if !moviesJSON.Valid || moviesJSON.String == "" {
		return []movies.Record{}, nil
	}

	var records []movies.Record
	if err := json.Unmarshal([]byte(moviesJSON.String), &records); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "get movies", "unmarshal collection", err)
	}
	if records == nil {
		records = []movies.Record{}
	}
	return records, nil
}

// SaveProfile upserts the user's display attributes without touching
// any stored collection (merge semantics).
func (s *Store) SaveProfile(ctx context.Context, userID string, profile Profile) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return services.Wrap(services.ErrValidation, "store", "save profile", "user id required", nil)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO users (user_id, display_name, email, photo_url, updated_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(user_id) DO UPDATE SET
             display_name = excluded.display_name,
             email        = excluded.email,
             photo_url    = excluded.photo_url,
             updated_at   = excluded.updated_at`,
		userID,
		profile.DisplayName,
		profile.Email,
		profile.PhotoURL,
		timestamp,
	)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "store", "save profile", "", err)
	}
	return nil
}

// ListUsers returns every stored user for friend discovery, ordered by
// user id for stable output.
func (s *Store) ListUsers(ctx context.Context) ([]UserSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, display_name, email, photo_url, movie_count, updated_at
         FROM users ORDER BY user_id`,
	)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "list users", "", err)
	}
	defer rows.Close()

	var users []UserSummary
	for rows.Next() {
		var summary UserSummary
		var updatedAt string
		if err := rows.Scan(
			&summary.UserID,
			&summary.DisplayName,
			&summary.Email,
			&summary.PhotoURL,
			&summary.MovieCount,
			&updatedAt,
		); err != nil {
			return nil, services.Wrap(services.ErrPersistence, "store", "list users", "scan row", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, updatedAt); parseErr == nil {
			summary.UpdatedAt = parsed
		}
		users = append(users, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "list users", "", err)
	}
	if users == nil {
		users = []UserSummary{}
	}
	return users, nil
}

// Package store persists per-user movie collections and profiles in
// SQLite. Each user is one row; collection writes replace the stored
// document wholesale in a single statement, so readers observe either
// the old or the new collection, never a mix.
package store

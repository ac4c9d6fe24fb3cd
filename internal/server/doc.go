// Package server exposes the HTTP API: status, user listing, profile
// updates, stored collections, CSV imports, and comparisons.
package server

// Package serverrun assembles and runs the reelmated process: logger,
// single-instance lock, store, import pipeline, and HTTP API.
package serverrun

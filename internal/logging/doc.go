// Package logging constructs the application's slog loggers and holds
// the standardized attribute keys used across components.
package logging

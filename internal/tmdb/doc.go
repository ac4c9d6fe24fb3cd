// Package tmdb provides the Movie Database search client used by
// enrichment. The client is always constructed explicitly and injected;
// nothing reads API keys from ambient state.
package tmdb

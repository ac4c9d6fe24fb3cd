// Package api defines the transport-level payloads exchanged between
// the server and its clients, plus converters from domain types.
package api

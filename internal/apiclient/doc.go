// Package apiclient is the HTTP client used by the CLI to talk to a
// running reelmated instance.
package apiclient

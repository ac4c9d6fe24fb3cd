// Package services holds cross-cutting service plumbing: the error
// taxonomy shared by the import and serving layers, and context
// annotation helpers for request correlation.
package services

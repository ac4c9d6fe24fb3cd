// Package config loads and validates reelmate configuration from TOML.
// A missing config file yields defaults; path fields are expanded and
// normalized before validation.
package config

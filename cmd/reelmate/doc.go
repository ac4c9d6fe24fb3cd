// Command reelmate is the CLI companion to reelmated. It imports
// Letterboxd exports, manages profiles, and compares collections over
// the HTTP API.
package main

// Package compare computes overlap and similarity statistics between
// two users' movie collections using identity-key sets.
package compare

package common

import "strings"

// NormalizeName converts a user-entered name into its canonical lookup form:
// lower-cased and trimmed of surrounding whitespace. Display code keeps the
// original casing; storage keys and comparisons always use the normalized form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameName reports whether two user names refer to the same account.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

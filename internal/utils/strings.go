package utils

import "strings"

// HasPrefixFold checks if a string starts with prefix, case-insensitively.
func HasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}

// TrimPrefixFold removes prefix from s if present, case-insensitively.
func TrimPrefixFold(s, prefix string) string {
	if HasPrefixFold(s, prefix) {
		return s[len(prefix):]
	}
	return s
}

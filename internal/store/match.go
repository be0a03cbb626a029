package store

import "strings"

// matchPattern reports whether key matches the restricted wildcard pattern
// used by KEYS. "*" matches every key. A single '*' splits the pattern into
// a prefix and a suffix which may overlap on short keys. A pattern without
// '*' requires exact equality. Only one wildcard is supported; extra stars
// are matched using the first split only.
func matchPattern(key, pattern string) bool {
	if pattern == "*" {
		return true
	}

	star := strings.Index(pattern, "*")
	if star < 0 {
		return key == pattern
	}

	prefix := pattern[:star]
	suffix := pattern[star+1:]
	return strings.HasPrefix(key, prefix) && strings.HasSuffix(key, suffix)
}

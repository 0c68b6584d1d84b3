// Package strings provides small string-slice utilities shared by the
// filtering surfaces.
package strings

import "strings"

// DedupeAndTrim removes duplicates and blanks from a slice, trimming each
// element. Order is preserved. Listing filters run this over user-supplied
// label selections so repeated query parameters count once.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

package compliance

import "strings"

// Normalize trims, deduplicates, and orders a list of violation or
// suggestion strings for display. Dedup is exact string equality after
// trimming, first occurrence wins. Ordering is a stable three-way partition:
// strings mentioning "Metro 2" first, then "FCRA", then "FDCPA", then
// everything else, preserving relative order within each partition.
//
// This ordering is a display contract consumed by golden comparisons in the
// UI; change it and saved dispute views stop lining up.
func Normalize(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	deduped := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		deduped = append(deduped, trimmed)
	}

	out := make([]string, 0, len(deduped))
	matched := make([]bool, len(deduped))
	for _, marker := range []string{"Metro 2", "FCRA", "FDCPA"} {
		for i, v := range deduped {
			if !matched[i] && strings.Contains(v, marker) {
				matched[i] = true
				out = append(out, v)
			}
		}
	}
	for i, v := range deduped {
		if !matched[i] {
			out = append(out, v)
		}
	}
	return out
}

// Statements projects violations to their display statements.
func Statements(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Statement)
	}
	return out
}

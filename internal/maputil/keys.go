// Package maputil provides helpers for maps keyed by strings.
package maputil

import "sort"

// SortedKeys returns the keys of m in ascending order. The result is never
// nil, so a nil or empty map yields an empty slice.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

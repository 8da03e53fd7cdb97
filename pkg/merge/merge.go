// Package merge provides recursive merging of plain nested mappings.
//
// A plain nested mapping is a map[string]any whose values are either leaves
// (strings, numbers, booleans, sequences, nil) or further map[string]any
// values. Merging is key-by-key for overlapping mappings; any other overlap is
// resolved by replacing the base value with the overlay value wholesale.
package merge

import (
	"sort"
	"strings"
)

// Deep merges overlay onto base and returns the result.
// Neither argument is modified and the result shares no maps or slices with
// either of them. For every overlay key: when both sides hold a mapping they
// are merged recursively, otherwise the overlay value wins. Keys that only
// exist in base are kept as they are.
func Deep(base, overlay map[string]any) map[string]any {
	out := Clone(base)
	if out == nil {
		out = make(map[string]any, len(overlay))
	}

	for key, overVal := range overlay {
		baseVal, exists := out[key]
		if !exists {
			out[key] = cloneValue(overVal)
			continue
		}

		baseMap, baseIsMap := baseVal.(map[string]any)
		overMap, overIsMap := overVal.(map[string]any)
		if baseIsMap && overIsMap {
			out[key] = Deep(baseMap, overMap)
		} else {
			out[key] = cloneValue(overVal)
		}
	}

	return out
}

// All folds layers left to right, so every layer overrides the ones before it:
// All(a, b, c) == Deep(Deep(a, b), c). Nil layers are skipped.
func All(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		out = Deep(out, layer)
	}
	return out
}

// Flatten converts a nested mapping into a single-level mapping keyed by
// dot-separated paths. Empty nested mappings are kept as leaves so that no
// key disappears from the result.
func Flatten(m map[string]any) map[string]any {
	out := make(map[string]any)
	flatten(m, "", out)
	return out
}

func flatten(m map[string]any, prefix string, out map[string]any) {
	for key, val := range m {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := val.(map[string]any); ok && len(nested) > 0 {
			flatten(nested, full, out)
			continue
		}
		out[full] = val
	}
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SplitPath splits a dotted path into its segments, dropping empty ones.
func SplitPath(path string) []string {
	parts := strings.Split(path, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

package adapter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// wholeFloat returns the text of f with a trailing ".0" when f is finite,
// has no fraction, and would otherwise be printed as a bare integer.
// Such values read back as integers unless the decimal point is kept.
func wholeFloat(f float64) (string, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) >= 1e21 {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64) + ".0", true
}

// withFloats returns a copy of v in which every whole-valued float is
// replaced by wrap(text). Containers are copied; v is left untouched.
func withFloats(v any, wrap func(text string) any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = withFloats(inner, wrap)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(t))
		for k, inner := range t {
			out[k] = withFloats(inner, wrap)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = withFloats(inner, wrap)
		}
		return out
	case float32:
		return withFloats(float64(t), wrap)
	case float64:
		if text, ok := wholeFloat(t); ok {
			return wrap(text)
		}
		return t
	default:
		return v
	}
}

// nilLeaf returns the dotted path of the first nil value in v, visiting keys
// in lexical order.
func nilLeaf(v any, path string) (string, bool) {
	switch t := v.(type) {
	case nil:
		return path, true
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if p, ok := nilLeaf(t[k], join(path, k)); ok {
				return p, true
			}
		}
	case map[any]any:
		keys := make(map[string]any, len(t))
		for k, inner := range t {
			keys[fmt.Sprint(k)] = inner
		}
		return nilLeaf(keys, path)
	case []any:
		for i, inner := range t {
			if p, ok := nilLeaf(inner, fmt.Sprintf("%s[%d]", path, i)); ok {
				return p, true
			}
		}
	}
	return "", false
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

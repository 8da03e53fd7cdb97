package adapter

import (
	"encoding/json"
	"fmt"
	"math"
)

// normalize rewrites decoded values in place so that all formats agree on
// number and container types. Keys of nested map[any]any values are left
// alone; converting them is the caller's decision.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = normalize(inner)
		}
		return t
	case map[any]any:
		for k, inner := range t {
			t[k] = normalize(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = normalize(inner)
		}
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return unsigned(uint64(t))
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return unsigned(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}

func unsigned(u uint64) any {
	if u > math.MaxInt64 {
		return u
	}
	return int64(u)
}

// topLevel turns a decoded document into the mapping handed to callers.
// A top-level mapping with non-string keys has its keys converted to strings;
// any other kind of document is rejected.
func topLevel(v any) (map[string]any, error) {
	switch t := normalize(v).(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		if t == nil {
			return map[string]any{}, nil
		}
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[fmt.Sprint(k)] = inner
		}
		return out, nil
	default:
		return nil, fmt.Errorf("top-level value is %T, want a mapping", v)
	}
}

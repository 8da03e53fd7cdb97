// Package adapter converts plain nested mappings to and from text formats.
//
// Each supported format is an Adapter registered under a short name. The
// built-in adapters are "yaml", "json" and "toml"; applications may register
// their own. Decoded values are normalized so that every format produces the
// same Go types: int64 for integers, float64 for other numbers, []any for
// sequences and map[string]any for mappings.
package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupported is returned by Lookup for a name with no registered adapter.
var ErrUnsupported = errors.New("unsupported adapter")

// ErrNilValue is returned by Serialize when the format has no way to write
// a nil value.
var ErrNilValue = errors.New("nil value cannot be encoded")

// Adapter is a named pair of conversions for one text format.
type Adapter interface {
	// Name is the format name used for lookup, e.g. "yaml".
	Name() string
	// Serialize encodes m as deterministic, human-readable text.
	Serialize(m map[string]any) ([]byte, error)
	// Deserialize decodes text into a plain nested mapping. Empty input
	// yields an empty mapping.
	Deserialize(data []byte) (map[string]any, error)
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Adapter)
)

func init() {
	Register(YAML{})
	Register(JSON{})
	Register(TOML{})
}

// Register makes a available under a.Name(), replacing any adapter already
// registered under that name. Names are case-insensitive.
func Register(a Adapter) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(a.Name())] = a
}

// Lookup returns the adapter registered under name.
func Lookup(name string) (Adapter, error) {
	mu.RLock()
	defer mu.RUnlock()
	a, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupported, name, strings.Join(namesLocked(), ", "))
	}
	return a, nil
}

// Names returns the registered adapter names in lexical order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func blank(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}

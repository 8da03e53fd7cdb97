package adapter

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// TOML encodes mappings as TOML documents.
type TOML struct{}

var _ Adapter = TOML{}

// Name implements Adapter.
func (TOML) Name() string { return "toml" }

// Serialize implements Adapter. TOML has no null, so a nil value anywhere
// in m is an error rather than a silently dropped key.
func (TOML) Serialize(m map[string]any) ([]byte, error) {
	if m == nil {
		m = map[string]any{}
	}
	if path, ok := nilLeaf(m, ""); ok {
		return nil, fmt.Errorf("encoding toml: %s: %w", path, ErrNilValue)
	}
	out, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding toml: %w", err)
	}
	return out, nil
}

// Deserialize implements Adapter.
func (TOML) Deserialize(data []byte) (map[string]any, error) {
	if blank(data) {
		return map[string]any{}, nil
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding toml: %w", err)
	}
	return topLevel(doc)
}

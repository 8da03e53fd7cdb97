package adapter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML encodes mappings as YAML documents with two-space indentation.
type YAML struct{}

var _ Adapter = YAML{}

// Name implements Adapter.
func (YAML) Name() string { return "yaml" }

// Serialize implements Adapter. Whole-valued floats keep their decimal
// point (2.0, not 2) so they decode as floats again.
func (YAML) Serialize(m map[string]any) ([]byte, error) {
	if m == nil {
		m = map[string]any{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(withFloats(m, yamlFloat)); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize implements Adapter.
func (YAML) Deserialize(data []byte) (map[string]any, error) {
	if blank(data) {
		return map[string]any{}, nil
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	m, err := topLevel(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	return m, nil
}

func yamlFloat(text string) any {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: text}
}

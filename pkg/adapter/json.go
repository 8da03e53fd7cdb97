package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSON encodes mappings as indented JSON objects.
type JSON struct{}

var _ Adapter = JSON{}

// Name implements Adapter.
func (JSON) Name() string { return "json" }

// Serialize implements Adapter. Whole-valued floats keep their decimal
// point (2.0, not 2) so they decode as floats again.
func (JSON) Serialize(m map[string]any) ([]byte, error) {
	if m == nil {
		m = map[string]any{}
	}
	out, err := json.MarshalIndent(withFloats(m, newJSONFloat), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return append(out, '\n'), nil
}

// Deserialize implements Adapter. Numbers are decoded exactly, so integers
// come back as int64 rather than float64.
func (JSON) Deserialize(data []byte) (map[string]any, error) {
	if blank(data) {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding json: unexpected data after top-level value")
	}

	m, err := topLevel(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return m, nil
}

// jsonFloat is a number literal written as is.
type jsonFloat string

func newJSONFloat(text string) any { return jsonFloat(text) }

func (f jsonFloat) MarshalJSON() ([]byte, error) { return []byte(f), nil }

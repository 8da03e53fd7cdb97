package merge

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MergeTestSuite struct {
	suite.Suite
}

func (s *MergeTestSuite) TestDeep() {
	testCases := []struct {
		name     string
		base     map[string]any
		overlay  map[string]any
		expected map[string]any
	}{
		{
			name:     "nil base",
			base:     nil,
			overlay:  map[string]any{"a": 1},
			expected: map[string]any{"a": 1},
		},
		{
			name:     "nil overlay",
			base:     map[string]any{"a": 1},
			overlay:  nil,
			expected: map[string]any{"a": 1},
		},
		{
			name:     "disjoint keys",
			base:     map[string]any{"a": 1},
			overlay:  map[string]any{"b": 2},
			expected: map[string]any{"a": 1, "b": 2},
		},
		{
			name:     "overlay scalar wins",
			base:     map[string]any{"a": 1},
			overlay:  map[string]any{"a": 2},
			expected: map[string]any{"a": 2},
		},
		{
			name:     "mapping replaces scalar",
			base:     map[string]any{"a": 1},
			overlay:  map[string]any{"a": map[string]any{"b": 2}},
			expected: map[string]any{"a": map[string]any{"b": 2}},
		},
		{
			name:     "scalar replaces mapping",
			base:     map[string]any{"a": map[string]any{"b": 2}},
			overlay:  map[string]any{"a": 1},
			expected: map[string]any{"a": 1},
		},
		{
			name:     "sequences are replaced, not concatenated",
			base:     map[string]any{"hosts": []any{"a", "b"}},
			overlay:  map[string]any{"hosts": []any{"c"}},
			expected: map[string]any{"hosts": []any{"c"}},
		},
		{
			name: "nested merge keeps base-only keys",
			base: map[string]any{
				"ssh": map[string]any{"port": 22, "user": "root"},
			},
			overlay: map[string]any{
				"ssh": map[string]any{"port": 2222},
			},
			expected: map[string]any{
				"ssh": map[string]any{"port": 2222, "user": "root"},
			},
		},
		{
			name: "nil overlay value still wins",
			base: map[string]any{"a": map[string]any{"b": 1}},
			overlay: map[string]any{
				"a": nil,
			},
			expected: map[string]any{"a": nil},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, Deep(tc.base, tc.overlay))
		})
	}
}

func (s *MergeTestSuite) TestLayerPrecedence() {
	def := map[string]any{"a": map[string]any{"x": 1, "y": 2}}
	system := map[string]any{"a": map[string]any{"y": 3, "z": 4}}
	user := map[string]any{"a": map[string]any{"z": 5}}

	expected := map[string]any{"a": map[string]any{"x": 1, "y": 3, "z": 5}}

	s.Equal(expected, Deep(Deep(def, system), user))
	s.Equal(expected, All(def, system, user))
}

func (s *MergeTestSuite) TestDeepDoesNotMutateInputs() {
	base := map[string]any{"a": map[string]any{"x": 1}, "list": []any{1, 2}}
	overlay := map[string]any{"a": map[string]any{"y": 2}}

	out := Deep(base, overlay)

	s.Equal(map[string]any{"a": map[string]any{"x": 1}, "list": []any{1, 2}}, base)
	s.Equal(map[string]any{"a": map[string]any{"y": 2}}, overlay)

	// The result must not alias either input.
	out["a"].(map[string]any)["x"] = 100
	out["list"].([]any)[0] = 100
	s.Equal(1, base["a"].(map[string]any)["x"])
	s.Equal(1, base["list"].([]any)[0])

	out["a"].(map[string]any)["y"] = 200
	s.Equal(2, overlay["a"].(map[string]any)["y"])
}

func (s *MergeTestSuite) TestAllSkipsNilLayers() {
	s.Equal(map[string]any{"a": 1}, All(nil, map[string]any{"a": 1}, nil))
	s.Equal(map[string]any{}, All())
}

func (s *MergeTestSuite) TestFlatten() {
	in := map[string]any{
		"ssh": map[string]any{
			"port":  22,
			"hosts": []any{"a"},
			"opts":  map[string]any{},
		},
		"debug": true,
	}

	s.Equal(map[string]any{
		"ssh.port":  22,
		"ssh.hosts": []any{"a"},
		"ssh.opts":  map[string]any{},
		"debug":     true,
	}, Flatten(in))
}

func (s *MergeTestSuite) TestSplitPath() {
	s.Equal([]string{"a", "b", "c"}, SplitPath("a.b.c"))
	s.Equal([]string{"a", "b"}, SplitPath(".a..b."))
	s.Empty(SplitPath(""))
}

func (s *MergeTestSuite) TestSortedKeys() {
	s.Equal([]string{"a", "b", "c"}, SortedKeys(map[string]any{"c": 1, "a": 2, "b": 3}))
}

func TestMergeSuite(t *testing.T) {
	suite.Run(t, new(MergeTestSuite))
}

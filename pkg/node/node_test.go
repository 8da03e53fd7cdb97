package node_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lc/strata/pkg/node"
)

type NodeTestSuite struct {
	suite.Suite
	n *node.Node
}

func (s *NodeTestSuite) SetupTest() {
	s.n = node.New()
}

func (s *NodeTestSuite) TestAutoVivification() {
	// Given an empty node
	s.Require().True(s.n.IsEmpty())

	// When chaining reads of absent keys and setting a leaf
	x, ok := s.n.Get("x").(*node.Node)
	s.Require().True(ok)
	y, ok := x.Get("y").(*node.Node)
	s.Require().True(ok)
	y.Set("z", 5)

	// Then the whole path exists
	s.Equal(map[string]any{
		"x": map[string]any{"y": map[string]any{"z": 5}},
	}, s.n.ToMapping(false))
}

func (s *NodeTestSuite) TestSubChaining() {
	s.n.Sub("ssh").Set("port", 22)
	s.n.Sub("auth").Sub("user").Set("name", "lana")

	s.Equal(map[string]any{
		"ssh":  map[string]any{"port": 22},
		"auth": map[string]any{"user": map[string]any{"name": "lana"}},
	}, s.n.ToMapping(false))
}

func (s *NodeTestSuite) TestSubOnLeafReturnsNil() {
	s.n.Set("port", 22)
	s.Nil(s.n.Sub("port"))
	s.Equal(22, s.n.Get("port"))
}

func (s *NodeTestSuite) TestGetOptionalDoesNotMutate() {
	s.n.Set("present", "yes")

	testCases := []struct {
		name    string
		key     string
		wantVal any
		wantOK  bool
	}{
		{name: "existing key", key: "present", wantVal: "yes", wantOK: true},
		{name: "absent key", key: "absent", wantVal: nil, wantOK: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			keysBefore := s.n.Keys()
			emptyBefore := s.n.IsEmpty()

			val, ok := s.n.GetOptional(tc.key)

			s.Equal(tc.wantOK, ok)
			s.Equal(tc.wantVal, val)
			s.Equal(keysBefore, s.n.Keys())
			s.Equal(emptyBefore, s.n.IsEmpty())
		})
	}
}

func (s *NodeTestSuite) TestGetOptionalOnEmptyNode() {
	_, ok := s.n.GetOptional("missing")
	s.False(ok)
	s.True(s.n.IsEmpty())
	s.Empty(s.n.Keys())
}

func (s *NodeTestSuite) TestSetOverwritesSubtree() {
	s.n.Sub("a").Set("b", 1)
	s.n.Set("a", "leaf")

	s.Equal(map[string]any{"a": "leaf"}, s.n.ToMapping(false))
}

func (s *NodeTestSuite) TestIndexAccess() {
	s.n.SetIndex("name", "svc")
	s.n.SetIndex(8080, "http")

	s.Equal("svc", s.n.Index("name"))
	s.Equal("http", s.n.Get("8080"))

	child, ok := s.n.Index(true).(*node.Node)
	s.Require().True(ok)
	s.True(child.IsEmpty())
	s.True(s.n.HasKey("true"))
}

func (s *NodeTestSuite) TestStructuralQueries() {
	s.n.Set("b", 1)
	s.n.Set("a", 2)

	s.True(s.n.HasKey("a"))
	s.False(s.n.HasKey("c"))
	s.Equal([]string{"a", "b"}, s.n.Keys())
	s.Equal(2, s.n.Len())
	s.False(s.n.IsEmpty())

	s.True(s.n.Delete("a"))
	s.False(s.n.Delete("a"))
	s.Equal([]string{"b"}, s.n.Keys())
}

func (s *NodeTestSuite) TestEachIsSortedAndStoppable() {
	s.n.Set("c", 3)
	s.n.Set("a", 1)
	s.n.Set("b", 2)

	var seen []string
	s.n.Each(func(key string, _ any) bool {
		seen = append(seen, key)
		return key != "b"
	})
	s.Equal([]string{"a", "b"}, seen)
}

func (s *NodeTestSuite) TestFromMappingWrapsNestedMappings() {
	n := node.FromMapping(map[string]any{
		"ssh":   map[string]any{"port": 22},
		"hosts": []any{"a", "b"},
		"debug": true,
		"none":  nil,
	}, false)

	ssh, ok := n.Get("ssh").(*node.Node)
	s.Require().True(ok)
	s.Equal(22, ssh.Get("port"))
	s.Equal([]any{"a", "b"}, n.Get("hosts"))
	s.Equal(true, n.Get("debug"))

	val, ok := n.GetOptional("none")
	s.True(ok)
	s.Nil(val)
}

func (s *NodeTestSuite) TestStringifyKeys() {
	raw := map[string]any{
		"ports": map[any]any{80: "http", 443: "https"},
	}

	s.Run("without stringification the map stays a leaf", func() {
		n := node.FromMapping(raw, false)
		_, isNode := n.Get("ports").(*node.Node)
		s.False(isNode)
		s.Equal(raw, n.ToMapping(false))
	})

	s.Run("with stringification the map becomes a child", func() {
		n := node.FromMapping(raw, true)
		ports, isNode := n.Get("ports").(*node.Node)
		s.Require().True(isNode)
		s.Equal([]string{"443", "80"}, ports.Keys())
	})

	s.Run("ToMapping converts leaves at every level", func() {
		n := node.New()
		n.Sub("a").Set("b", map[any]any{1: map[any]any{true: "x"}})
		s.Equal(map[string]any{
			"a": map[string]any{
				"b": map[string]any{"1": map[string]any{"true": "x"}},
			},
		}, n.ToMapping(true))
	})
}

func (s *NodeTestSuite) TestToMappingConvertsNodesInsideRawMaps() {
	inner := node.New()
	inner.Set("k", "v")
	s.n.Set("raw", map[string]any{"inner": inner})

	s.Equal(map[string]any{
		"raw": map[string]any{"inner": map[string]any{"k": "v"}},
	}, s.n.ToMapping(false))
}

func (s *NodeTestSuite) TestCloneIsDeep() {
	s.n.Sub("a").Set("list", []any{1, 2})
	clone := s.n.Clone()

	clone.Sub("a").Set("extra", true)
	clone.Sub("a").Get("list").([]any)[0] = 100

	s.Equal(map[string]any{"a": map[string]any{"list": []any{1, 2}}}, s.n.ToMapping(false))
	s.True(node.Equal(s.n, node.FromMapping(map[string]any{
		"a": map[string]any{"list": []any{1, 2}},
	}, false)))
}

func (s *NodeTestSuite) TestNilNodeReads() {
	var n *node.Node
	s.True(n.IsEmpty())
	s.False(n.HasKey("a"))
	s.Nil(n.Keys())
	s.Equal(map[string]any{}, n.ToMapping(false))
	_, ok := n.Lookup("a")
	s.False(ok)
}

func (s *NodeTestSuite) TestLookup() {
	s.n.Sub("ssh").Set("port", 22)
	s.n.Set("raw", map[string]any{"k": "v"})
	s.n.Set("leaf", 1)

	testCases := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{path: "ssh.port", want: 22, wantOK: true},
		{path: "raw.k", want: "v", wantOK: true},
		{path: "ssh.missing", wantOK: false},
		{path: "leaf.deeper", wantOK: false},
		{path: "", wantOK: false},
	}

	for _, tc := range testCases {
		s.Run(tc.path, func() {
			got, ok := s.n.Lookup(tc.path)
			s.Equal(tc.wantOK, ok)
			if tc.wantOK {
				s.Equal(tc.want, got)
			}
		})
	}

	// Lookup never vivifies
	s.Equal([]string{"leaf", "raw", "ssh"}, s.n.Keys())
	s.Equal([]string{"port"}, s.n.Sub("ssh").Keys())
}

func (s *NodeTestSuite) TestSetPath() {
	s.n.Set("leaf", 1)
	s.n.Set("raw", map[string]any{"keep": true})

	s.n.SetPath("a.b.c", "deep")
	s.n.SetPath("leaf.x", 2)
	s.n.SetPath("raw.added", 3)
	s.n.SetPath("", "ignored")

	s.Equal(map[string]any{
		"a":    map[string]any{"b": map[string]any{"c": "deep"}},
		"leaf": map[string]any{"x": 2},
		"raw":  map[string]any{"keep": true, "added": 3},
	}, s.n.ToMapping(false))
}

func (s *NodeTestSuite) TestDecode() {
	type sshConfig struct {
		Port    int           `mapstructure:"port"`
		Hosts   []string      `mapstructure:"hosts"`
		Timeout time.Duration `mapstructure:"timeout"`
	}
	type appConfig struct {
		SSH   sshConfig `mapstructure:"ssh"`
		Debug bool      `mapstructure:"debug"`
	}

	n := node.FromMapping(map[string]any{
		"ssh": map[string]any{
			"port":    "2222",
			"hosts":   []any{"a.example.com", "b.example.com"},
			"timeout": "5s",
		},
		"debug": int64(1),
	}, false)

	var cfg appConfig
	s.Require().NoError(n.Decode(&cfg))
	s.Equal(appConfig{
		SSH: sshConfig{
			Port:    2222,
			Hosts:   []string{"a.example.com", "b.example.com"},
			Timeout: 5 * time.Second,
		},
		Debug: true,
	}, cfg)
}

func (s *NodeTestSuite) TestDecodeError() {
	n := node.FromMapping(map[string]any{"port": "not-a-number"}, false)

	var cfg struct {
		Port int `mapstructure:"port"`
	}
	err := n.Decode(&cfg)
	s.Error(err)
	s.Contains(err.Error(), "decoding config")
}

func TestNodeSuite(t *testing.T) {
	suite.Run(t, new(NodeTestSuite))
}

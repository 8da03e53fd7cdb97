// Package node provides Node, a dynamically shaped configuration tree.
//
// A Node maps string keys to values. A value is either a leaf (string,
// number, bool, sequence, nil, ...) or a child *Node. Reading an absent key
// through Get creates an empty child in place, so deep paths can be built by
// chaining; GetOptional is the read that never creates anything.
//
//	n := node.New()
//	n.Sub("ssh").Set("port", 22)
//	n.Sub("auth").Sub("user").Set("name", "lana")
//
//	if v, ok := n.GetOptional("ssh"); ok {
//		...
//	}
//
// Nodes form a strict tree. Storing a node under one of its own descendants
// is not detected and must be avoided by the caller.
package node

import (
	"fmt"
	"reflect"

	"github.com/lc/strata/pkg/merge"
)

// Node is one level of a configuration tree. The zero value is not usable;
// use New or FromMapping.
type Node struct {
	values map[string]any
}

// New returns an empty node.
func New() *Node {
	return &Node{values: make(map[string]any)}
}

// FromMapping builds a node from a plain nested mapping. Nested
// map[string]any values become child nodes; everything else is stored as a
// leaf. When stringifyKeys is set, nested map[any]any values are also turned
// into child nodes with their keys converted to strings.
func FromMapping(m map[string]any, stringifyKeys bool) *Node {
	n := &Node{values: make(map[string]any, len(m))}
	for key, val := range m {
		n.values[key] = wrap(val, stringifyKeys)
	}
	return n
}

func wrap(val any, stringifyKeys bool) any {
	switch v := val.(type) {
	case map[string]any:
		return FromMapping(v, stringifyKeys)
	case map[any]any:
		if !stringifyKeys {
			return v
		}
		return FromMapping(stringify(v), true)
	default:
		return val
	}
}

// Get returns the value stored under key. If key is absent an empty child
// node is stored under it and returned.
func (n *Node) Get(key string) any {
	if val, ok := n.values[key]; ok {
		return val
	}
	child := New()
	n.values[key] = child
	return child
}

// GetOptional returns the value stored under key and whether it exists.
// It never modifies the node.
func (n *Node) GetOptional(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	val, ok := n.values[key]
	return val, ok
}

// Sub is Get for chaining: it returns the child node under key, creating it
// when absent. It returns nil if key holds a leaf.
func (n *Node) Sub(key string) *Node {
	child, _ := n.Get(key).(*Node)
	return child
}

// Set stores value under key, replacing whatever was there.
func (n *Node) Set(key string, value any) {
	n.values[key] = value
}

// Index is Get addressed by an arbitrary key, which is converted to its
// string form first.
func (n *Node) Index(key any) any {
	return n.Get(keyString(key))
}

// SetIndex is Set addressed by an arbitrary key, which is converted to its
// string form first.
func (n *Node) SetIndex(key any, value any) {
	n.Set(keyString(key), value)
}

// Delete removes key and reports whether it was present.
func (n *Node) Delete(key string) bool {
	if _, ok := n.values[key]; !ok {
		return false
	}
	delete(n.values, key)
	return true
}

// HasKey reports whether key is present.
func (n *Node) HasKey(key string) bool {
	_, ok := n.GetOptional(key)
	return ok
}

// Keys returns the node's keys in lexical order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return merge.SortedKeys(n.values)
}

// Len returns the number of keys.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.values)
}

// IsEmpty reports whether the node has no keys.
func (n *Node) IsEmpty() bool { return n.Len() == 0 }

// Each calls fn for every key in lexical order until fn returns false.
func (n *Node) Each(fn func(key string, value any) bool) {
	for _, k := range n.Keys() {
		if !fn(k, n.values[k]) {
			return
		}
	}
}

// ToMapping converts the node and all of its descendants into a plain nested
// mapping. When stringifyKeys is set, map[any]any values found anywhere in
// the tree are converted to map[string]any as well.
func (n *Node) ToMapping(stringifyKeys bool) map[string]any {
	if n == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(n.values))
	for key, val := range n.values {
		out[key] = plain(val, stringifyKeys)
	}
	return out
}

func plain(val any, stringifyKeys bool) any {
	switch v := val.(type) {
	case *Node:
		return v.ToMapping(stringifyKeys)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[k] = plain(inner, stringifyKeys)
		}
		return out
	case map[any]any:
		if stringifyKeys {
			return plain(stringify(v), true)
		}
		out := make(map[any]any, len(v))
		for k, inner := range v {
			out[k] = plain(inner, false)
		}
		return out
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = plain(inner, stringifyKeys)
		}
		return out
	default:
		return val
	}
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	return FromMapping(n.ToMapping(false), false)
}

// String renders the node as its plain mapping, for debugging.
func (n *Node) String() string {
	return fmt.Sprint(n.ToMapping(false))
}

func stringify(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[keyString(k)] = v
	}
	return out
}

func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}

// Equal reports whether two nodes hold the same plain mapping.
func Equal(a, b *Node) bool {
	return reflect.DeepEqual(a.ToMapping(false), b.ToMapping(false))
}

var _ fmt.Stringer = (*Node)(nil)

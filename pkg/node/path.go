package node

import (
	"github.com/lc/strata/pkg/merge"
)

// Lookup resolves a dot-separated path such as "ssh.port" without modifying
// the tree. It reports false when any segment is missing or a leaf is hit
// before the last segment.
func (n *Node) Lookup(path string) (any, bool) {
	parts := merge.SplitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	var cur any = n
	for _, part := range parts {
		switch c := cur.(type) {
		case *Node:
			val, ok := c.GetOptional(part)
			if !ok {
				return nil, false
			}
			cur = val
		case map[string]any:
			val, ok := c[part]
			if !ok {
				return nil, false
			}
			cur = val
		default:
			return nil, false
		}
	}
	return cur, true
}

// SetPath stores value at a dot-separated path, creating intermediate nodes
// as needed. An intermediate leaf is replaced by a node.
func (n *Node) SetPath(path string, value any) {
	parts := merge.SplitPath(path)
	if len(parts) == 0 {
		return
	}

	cur := n
	for _, part := range parts[:len(parts)-1] {
		switch next := cur.values[part].(type) {
		case *Node:
			cur = next
		case map[string]any:
			child := FromMapping(next, false)
			cur.values[part] = child
			cur = child
		default:
			child := New()
			cur.values[part] = child
			cur = child
		}
	}
	cur.values[parts[len(parts)-1]] = value
}

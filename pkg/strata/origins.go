package strata

import (
	"github.com/lc/strata/pkg/merge"
)

// Origin describes one leaf of the effective configuration.
type Origin struct {
	// Key is the dot-separated path of the leaf.
	Key string
	// Value is the effective value.
	Value any
	// Level is the highest-priority layer that holds Key, or "" when the
	// value was set on the effective configuration directly.
	Level Level
}

// Origins lists every leaf of the effective configuration, sorted by key,
// with the layer it came from.
func (c *Config) Origins() []Origin {
	sk := c.stringifyKeys
	effective := merge.Flatten(c.cfg.ToMapping(sk))
	layers := []struct {
		level Level
		flat  map[string]any
	}{
		{LevelUser, merge.Flatten(c.user.ToMapping(sk))},
		{LevelSystem, merge.Flatten(c.system.ToMapping(sk))},
		{LevelDefault, merge.Flatten(c.def.ToMapping(sk))},
	}

	out := make([]Origin, 0, len(effective))
	for _, key := range merge.SortedKeys(effective) {
		o := Origin{Key: key, Value: effective[key]}
		for _, l := range layers {
			if _, ok := l.flat[key]; ok {
				o.Level = l.level
				break
			}
		}
		out = append(out, o)
	}
	return out
}

package strata

import (
	"fmt"
	"path/filepath"

	"github.com/lc/strata/internal/filesys"
	"github.com/lc/strata/internal/log"
	"github.com/lc/strata/pkg/merge"
	"github.com/lc/strata/pkg/node"
)

// Load reads the requested layers and updates the effective configuration.
// level is one of LevelDefault, LevelSystem, LevelUser or LevelAll; the empty
// level means LevelAll.
//
// The system and user layers are re-read from disk when requested. All reads
// happen before any state changes, so a failed Load leaves the Config as it
// was. The effective configuration is then rebuilt from the default, system
// and user layers, user winning over system winning over default. With
// WithAccumulate the requested layers are instead merged, in that order, onto
// the current effective configuration, which keeps whatever earlier loads put
// there.
func (c *Config) Load(level Level) error {
	level, err := ParseLevel(string(level))
	if err != nil {
		return err
	}

	var system, user *node.Node
	if level.includes(LevelSystem) {
		n, err := c.ReadLayer(c.systemDir)
		if err != nil {
			return fmt.Errorf("loading system layer: %w", err)
		}
		system = n
	}
	if level.includes(LevelUser) {
		n, err := c.ReadLayer(c.userDir)
		if err != nil {
			return fmt.Errorf("loading user layer: %w", err)
		}
		user = n
	}

	if system != nil {
		c.system = system
	}
	if user != nil {
		c.user = user
	}

	sk := c.stringifyKeys
	if c.accumulate {
		out := c.cfg.ToMapping(sk)
		if level.includes(LevelDefault) {
			out = merge.Deep(out, c.def.ToMapping(sk))
		}
		if system != nil {
			out = merge.Deep(out, system.ToMapping(sk))
		}
		if user != nil {
			out = merge.Deep(out, user.ToMapping(sk))
		}
		c.cfg = node.FromMapping(out, sk)
	} else {
		c.cfg = node.FromMapping(merge.All(
			c.def.ToMapping(sk),
			c.system.ToMapping(sk),
			c.user.ToMapping(sk),
		), sk)
	}

	log.Debug("strata: loaded", "name", c.name, "level", level, "keys", c.cfg.Len())
	return nil
}

// ReadLayer reads the layer file in dir. A missing file is an empty layer,
// not an error. A file the adapter cannot parse yields a *SerializationError.
func (c *Config) ReadLayer(dir string) (*node.Node, error) {
	path := filepath.Join(dir, c.fileName)
	c.file = path

	data, err := c.fs.ReadFile(path)
	if err != nil {
		if filesys.IsNotExist(err) {
			log.Debug("strata: no layer file", "path", path)
			return node.New(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m, err := c.adapter.Deserialize(data)
	if err != nil {
		return nil, &SerializationError{Op: OpDecode, Format: c.adapter.Name(), Path: path, Err: err}
	}
	log.Debug("strata: read layer", "path", path, "keys", len(m))
	return node.FromMapping(m, c.stringifyKeys), nil
}

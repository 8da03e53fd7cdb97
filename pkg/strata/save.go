package strata

import (
	"fmt"

	"github.com/lc/strata/internal/filesys"
	"github.com/lc/strata/internal/log"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Save writes the user or system layer to its file, creating the directory
// when needed. The empty level means LevelUser. The file is replaced
// atomically: a crash leaves either the old or the new content, never a
// partial write. There is no locking between processes.
func (c *Config) Save(level Level) error {
	if level == "" {
		level = LevelUser
	}
	if level != LevelUser && level != LevelSystem {
		return fmt.Errorf("%w: cannot save %q layer", ErrInvalidLevel, level)
	}

	path := c.Path(level)
	data, err := c.adapter.Serialize(c.layer(level).ToMapping(c.stringifyKeys))
	if err != nil {
		return &SerializationError{Op: OpEncode, Format: c.adapter.Name(), Path: path, Err: err}
	}

	dir := c.dir(level)
	if err := c.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := filesys.AtomicWrite(c.fs, path, data, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	log.Debug("strata: saved layer", "level", level, "path", path, "bytes", len(data))
	return nil
}

// CreateOptions controls Create.
type CreateOptions struct {
	// Source is the layer copied into the new file. Defaults to LevelDefault.
	Source Level
	// Destination is the layer written. Defaults to LevelUser.
	Destination Level
	// Load reloads all layers after the file is written.
	Load bool
}

// Create writes a first-run configuration file. When neither a system nor a
// user layer exists, the source layer is copied into the destination layer,
// saved, and Create returns true: the caller will usually tell the user to go
// and edit the new file. Otherwise nothing happens and Create returns false.
//
//	if created, err := c.Create(strata.CreateOptions{}); err != nil {
//		return err
//	} else if created {
//		return fmt.Errorf("edit %s", c.Path(strata.LevelUser))
//	}
func (c *Config) Create(opts CreateOptions) (bool, error) {
	src, dst := opts.Source, opts.Destination
	if src == "" {
		src = LevelDefault
	}
	if dst == "" {
		dst = LevelUser
	}
	if c.layer(src) == nil {
		return false, fmt.Errorf("%w: cannot create from %q layer", ErrInvalidLevel, src)
	}
	if dst != LevelUser && dst != LevelSystem {
		return false, fmt.Errorf("%w: cannot create %q layer", ErrInvalidLevel, dst)
	}

	if !c.system.IsEmpty() || !c.user.IsEmpty() {
		return false, nil
	}

	prev := c.layer(dst)
	c.setLayer(dst, c.layer(src).Clone())
	if err := c.Save(dst); err != nil {
		c.setLayer(dst, prev)
		return false, err
	}
	log.Info("strata: created config file", "name", c.name, "path", c.Path(dst))

	if opts.Load {
		if err := c.Load(LevelAll); err != nil {
			return true, err
		}
	}
	return true, nil
}

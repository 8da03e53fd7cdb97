package strata

import (
	"path/filepath"
	"strings"

	"github.com/lc/strata/internal/config"
	"github.com/lc/strata/internal/filesys"
	"github.com/lc/strata/internal/log"
	"github.com/lc/strata/pkg/adapter"
	"github.com/lc/strata/pkg/node"
)

// Config owns the default, system and user layers of one named
// configuration and the effective configuration merged from them.
//
// A Config is not safe for concurrent use.
type Config struct {
	name          string
	adapter       adapter.Adapter
	userDir       string
	systemDir     string
	fileName      string
	stringifyKeys bool
	accumulate    bool
	fs            filesys.FS
	file          string

	def    *node.Node
	system *node.Node
	user   *node.Node
	cfg    *node.Node
}

// New creates the configuration called name. Unless WithAutoLoad(false) is
// given, the system and user layers are read and merged over the defaults
// before New returns.
func New(name string, opts ...Option) (*Config, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNoName
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	a, err := adapter.Lookup(s.adapter)
	if err != nil {
		return nil, err
	}
	if s.userDir == "" {
		s.userDir = config.UserDir(name)
	}
	if s.systemDir == "" {
		s.systemDir = config.SystemDir(name)
	}

	c := &Config{
		name:          name,
		adapter:       a,
		userDir:       s.userDir,
		systemDir:     s.systemDir,
		fileName:      s.fileName,
		stringifyKeys: s.stringifyKeys,
		accumulate:    s.accumulate,
		fs:            s.fs,
		def:           node.FromMapping(s.defaults, s.stringifyKeys),
		system:        node.New(),
		user:          node.New(),
		cfg:           node.New(),
	}
	log.Debug("strata: created", "name", name, "adapter", a.Name(),
		"system", c.Path(LevelSystem), "user", c.Path(LevelUser))

	if s.autoLoad {
		if err := c.Load(LevelAll); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Effective builds the named configuration and returns its effective
// configuration. It is shorthand for New followed by Cfg.
func Effective(name string, opts ...Option) (*node.Node, error) {
	c, err := New(name, opts...)
	if err != nil {
		return nil, err
	}
	return c.Cfg(), nil
}

// Cfg returns the effective configuration.
func (c *Config) Cfg() *node.Node { return c.cfg }

// Default returns the default layer.
func (c *Config) Default() *node.Node { return c.def }

// System returns the system layer as last loaded or set.
func (c *Config) System() *node.Node { return c.system }

// User returns the user layer as last loaded or set.
func (c *Config) User() *node.Node { return c.user }

// SetSystem replaces the system layer in memory. Nothing is written until Save.
func (c *Config) SetSystem(n *node.Node) { c.system = orEmpty(n) }

// SetUser replaces the user layer in memory. Nothing is written until Save.
func (c *Config) SetUser(n *node.Node) { c.user = orEmpty(n) }

// Name returns the configuration name.
func (c *Config) Name() string { return c.name }

// Adapter returns the name of the format used for layer files.
func (c *Config) Adapter() string { return c.adapter.Name() }

// UserDir returns the user layer directory.
func (c *Config) UserDir() string { return c.userDir }

// SystemDir returns the system layer directory.
func (c *Config) SystemDir() string { return c.systemDir }

// FileName returns the layer file name.
func (c *Config) FileName() string { return c.fileName }

// File returns the path of the layer file read most recently.
func (c *Config) File() string { return c.file }

// Path returns the file path of the system or user layer, or "" for any
// other level.
func (c *Config) Path(level Level) string {
	switch level {
	case LevelSystem:
		return filepath.Join(c.systemDir, c.fileName)
	case LevelUser:
		return filepath.Join(c.userDir, c.fileName)
	default:
		return ""
	}
}

func (c *Config) layer(level Level) *node.Node {
	switch level {
	case LevelDefault:
		return c.def
	case LevelSystem:
		return c.system
	case LevelUser:
		return c.user
	default:
		return nil
	}
}

func (c *Config) setLayer(level Level, n *node.Node) {
	switch level {
	case LevelSystem:
		c.SetSystem(n)
	case LevelUser:
		c.SetUser(n)
	}
}

func (c *Config) dir(level Level) string {
	if level == LevelSystem {
		return c.systemDir
	}
	return c.userDir
}

func orEmpty(n *node.Node) *node.Node {
	if n == nil {
		return node.New()
	}
	return n
}

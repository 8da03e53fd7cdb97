package strata

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"github.com/lc/strata/internal/config"
	"github.com/lc/strata/internal/filesys"
	"github.com/lc/strata/pkg/merge"
	"github.com/lc/strata/pkg/node"
)

type settings struct {
	adapter       string
	userDir       string
	systemDir     string
	fileName      string
	defaults      map[string]any
	autoLoad      bool
	stringifyKeys bool
	accumulate    bool
	fs            filesys.FS
}

func defaultSettings() settings {
	return settings{
		adapter:  config.DefaultAdapter,
		fileName: config.DefaultFileName,
		autoLoad: true,
		fs:       filesys.OS(),
	}
}

// Option configures a Config built by New.
type Option func(*settings)

// WithAdapter selects the file format by adapter name ("yaml", "json", "toml").
func WithAdapter(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.adapter = name
		}
	}
}

// WithUserDir overrides the user layer directory.
func WithUserDir(dir string) Option {
	return func(s *settings) {
		if dir != "" {
			s.userDir = dir
		}
	}
}

// WithSystemDir overrides the system layer directory.
func WithSystemDir(dir string) Option {
	return func(s *settings) {
		if dir != "" {
			s.systemDir = dir
		}
	}
}

// WithFileName overrides the layer file name, "config" by default.
func WithFileName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.fileName = name
		}
	}
}

// WithDefaults sets the default layer. The mapping is copied.
func WithDefaults(m map[string]any) Option {
	return func(s *settings) { s.defaults = merge.Clone(m) }
}

// WithAutoLoad controls whether New loads every layer right away. It is on by default.
func WithAutoLoad(load bool) Option {
	return func(s *settings) { s.autoLoad = load }
}

// WithStringifyKeys makes non-string keys found in layer files usable as
// nested nodes by converting them to strings.
func WithStringifyKeys(on bool) Option {
	return func(s *settings) { s.stringifyKeys = on }
}

// WithAccumulate makes Load fold the requested layers onto the current
// effective configuration instead of rebuilding it from all layers.
func WithAccumulate(on bool) Option {
	return func(s *settings) { s.accumulate = on }
}

// WithFileSystem replaces the file system used to read and write layers.
func WithFileSystem(fsys filesys.FS) Option {
	return func(s *settings) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithAfero keeps layer files on an afero file system.
func WithAfero(fsys afero.Fs) Option {
	return WithFileSystem(filesys.Afero(fsys))
}

// Option keys recognized by NewFromMap.
const (
	KeyName          = "name"
	KeyAdapter       = "adapter"
	KeyUserDir       = "user_dir"
	KeySystemDir     = "system_dir"
	KeyFileName      = "file_name"
	KeyDefault       = "default"
	KeyLoad          = "load"
	KeyStringifyKeys = "stringify_keys"
	KeyAccumulate    = "accumulate"
)

// NewFromMap builds a Config from loosely typed options, as found in a
// bootstrap file or on a command line. Values are coerced to the type each
// option needs ("true" is a valid "load"). Every unrecognized key and every
// value that cannot be coerced is reported; nothing is built unless all of
// them are valid.
func NewFromMap(opts map[string]any) (*Config, error) {
	var (
		name    string
		options []Option
		errs    error
	)

	for _, key := range merge.SortedKeys(opts) {
		opt, err := fromValue(key, opts[key], &name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if opt != nil {
			options = append(options, opt)
		}
	}
	if errs != nil {
		return nil, errs
	}
	return New(name, options...)
}

func fromValue(key string, val any, name *string) (Option, error) {
	var (
		opt Option
		err error
	)
	switch key {
	case KeyName:
		*name, err = cast.ToStringE(val)
	case KeyAdapter:
		opt, err = stringOption(val, WithAdapter)
	case KeyUserDir:
		opt, err = stringOption(val, WithUserDir)
	case KeySystemDir:
		opt, err = stringOption(val, WithSystemDir)
	case KeyFileName:
		opt, err = stringOption(val, WithFileName)
	case KeyDefault:
		var m map[string]any
		if m, err = toMapping(val); err == nil {
			opt = WithDefaults(m)
		}
	case KeyLoad:
		opt, err = boolOption(val, WithAutoLoad)
	case KeyStringifyKeys:
		opt, err = boolOption(val, WithStringifyKeys)
	case KeyAccumulate:
		opt, err = boolOption(val, WithAccumulate)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", key, err)
	}
	return opt, nil
}

func stringOption(val any, apply func(string) Option) (Option, error) {
	v, err := cast.ToStringE(val)
	if err != nil {
		return nil, err
	}
	return apply(v), nil
}

func boolOption(val any, apply func(bool) Option) (Option, error) {
	v, err := cast.ToBoolE(val)
	if err != nil {
		return nil, err
	}
	return apply(v), nil
}

func toMapping(val any) (map[string]any, error) {
	switch v := val.(type) {
	case nil:
		return nil, nil
	case *node.Node:
		return v.ToMapping(true), nil
	default:
		return cast.ToStringMapE(val)
	}
}

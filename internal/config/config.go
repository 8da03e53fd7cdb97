package config

import (
	"os"
	"path/filepath"

	"github.com/lc/strata/internal/log"
)

const (
	// DefaultFileName is the layer file name. It is the same for every format.
	DefaultFileName = "config"
	// DefaultAdapter is the format used when none is chosen.
	DefaultAdapter = "yaml"
	// SystemRoot is the root of system-wide layers.
	SystemRoot = "/etc"
	// UserRoot is the per-user config root, relative to the home directory.
	UserRoot = ".config"
)

// Env abstracts the process environment so directory resolution is testable.
type Env interface {
	LookupEnv(string) (string, bool)
	UserHomeDir() (string, error)
}

type osEnv struct{}

func (osEnv) LookupEnv(k string) (string, bool) { return os.LookupEnv(k) }
func (osEnv) UserHomeDir() (string, error)      { return os.UserHomeDir() }

// OSEnv returns an Env backed by the running process.
func OSEnv() Env { return osEnv{} }

// SystemDir returns the system layer directory for name, /etc/<name>.
func SystemDir(name string) string {
	return filepath.Join(SystemRoot, name)
}

// UserDir returns the user layer directory for name using the process
// environment. See UserDirFrom.
func UserDir(name string) string {
	return UserDirFrom(OSEnv(), name)
}

// UserDirFrom returns the user layer directory for name:
// $XDG_CONFIG_HOME/<name> when XDG_CONFIG_HOME is an absolute path,
// ~/.config/<name> otherwise. If the home directory cannot be determined it
// falls back to a path relative to the current directory.
func UserDirFrom(env Env, name string) string {
	if xdg, ok := env.LookupEnv("XDG_CONFIG_HOME"); ok && filepath.IsAbs(xdg) {
		return filepath.Join(xdg, name)
	}
	home, err := env.UserHomeDir()
	if err != nil {
		log.Warn("config: could not determine home directory", "error", err)
		home = ""
	}
	return filepath.Join(home, UserRoot, name)
}

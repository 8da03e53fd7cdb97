package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lc/strata/internal/log"
	"github.com/lc/strata/pkg/strata"
)

func TestOptionMapFlagsOverrideOpt(t *testing.T) {
	opts, err := optionMap(flags{
		name:   "myapp",
		format: "json",
		opts:   []string{"adapter=toml", "load=false"},
	})
	require.NoError(t, err)
	assert.Equal(t, "myapp", opts[strata.KeyName])
	assert.Equal(t, "json", opts[strata.KeyAdapter])
	assert.Equal(t, "false", opts[strata.KeyLoad])
}

func TestOptionMapRejectsMalformedOpt(t *testing.T) {
	_, err := optionMap(flags{name: "myapp", opts: []string{"noequals"}})
	require.Error(t, err)
	_, err = optionMap(flags{name: "myapp", opts: []string{"=x"}})
	require.Error(t, err)
}

func TestParseValue(t *testing.T) {
	v, err := parseValue("22")
	require.NoError(t, err)
	assert.Equal(t, 22, v)

	v, err = parseValue("[a, b]")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, v)

	v, err = parseValue("hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", v)

	_, err = parseValue("[unclosed")
	require.Error(t, err)
}

func TestOpenReadsLayersAndDefaults(t *testing.T) {
	dir := t.TempDir()
	userDir := filepath.Join(dir, "user")
	sysDir := filepath.Join(dir, "system")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config"), []byte("port: 2222\n"), 0o644))

	defaults := filepath.Join(dir, "defaults.yaml")
	require.NoError(t, os.WriteFile(defaults, []byte("port: 22\nhost: localhost\n"), 0o644))

	c, a, err := open(flags{name: "myapp", userDir: userDir, systemDir: sysDir, defaults: defaults})
	require.NoError(t, err)
	assert.Equal(t, "yaml", a.Name())

	port, ok := c.Cfg().Lookup("port")
	require.True(t, ok)
	assert.EqualValues(t, 2222, port)
	host, ok := c.Cfg().Lookup("host")
	require.True(t, ok)
	assert.Equal(t, "localhost", host)
}

func TestOpenUnknownFormat(t *testing.T) {
	_, _, err := open(flags{name: "myapp", format: "ini"})
	require.ErrorIs(t, err, strata.ErrUnsupportedAdapter)
}

func TestOpenRequiresName(t *testing.T) {
	_, _, err := open(flags{userDir: t.TempDir(), systemDir: t.TempDir()})
	require.ErrorIs(t, err, strata.ErrNoName)
}

func TestDescribe(t *testing.T) {
	c, _, err := open(flags{name: "myapp", userDir: "/u", systemDir: "/s", opts: []string{"load=false"}})
	require.NoError(t, err)
	assert.Equal(t, "user (/u/config)", describe(c, strata.LevelUser))
	assert.Equal(t, "default", describe(c, strata.LevelDefault))
	assert.Equal(t, "-", describe(c, ""))
}

func TestSaveLayerLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	prev := log.Logger
	log.Logger = zap.New(core).Sugar()
	t.Cleanup(func() { log.Logger = prev })

	// a regular file where the user directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	c, _, err := open(flags{name: "myapp", userDir: filepath.Join(blocker, "myapp"), systemDir: t.TempDir(), opts: []string{"load=false"}})
	require.NoError(t, err)
	c.User().Set("port", int64(2222))

	require.Error(t, saveLayer(c, strata.LevelUser))
	entries := logs.FilterMessage("saving layer failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, c.Path(strata.LevelUser), entries[0].ContextMap()["path"])
}

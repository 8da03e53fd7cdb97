package filesys

import (
	"os"

	"github.com/spf13/afero"
)

// Afero adapts an afero.Fs to FS. It lets callers keep layer files in memory
// (afero.NewMemMapFs) or confine them under a base path (afero.NewBasePathFs).
func Afero(fsys afero.Fs) AferoFS {
	return AferoFS{fs: fsys}
}

// AferoFS implements FS on top of an afero.Fs.
type AferoFS struct {
	fs afero.Fs
}

var _ FS = AferoFS{}

func (a AferoFS) ReadFile(p string) ([]byte, error)      { return afero.ReadFile(a.fs, p) }
func (a AferoFS) MkdirAll(p string, m os.FileMode) error { return a.fs.MkdirAll(p, m) }
func (a AferoFS) Rename(old, newName string) error       { return a.fs.Rename(old, newName) }
func (a AferoFS) Remove(p string) error                  { return a.fs.Remove(p) }
func (a AferoFS) Chmod(p string, m os.FileMode) error    { return a.fs.Chmod(p, m) }
func (a AferoFS) Open(p string) (File, error)            { return wrapAfero(a.fs.Open(p)) }
func (a AferoFS) CreateTemp(dir, pat string) (File, error) {
	return wrapAfero(afero.TempFile(a.fs, dir, pat))
}

func wrapAfero(f afero.File, err error) (File, error) {
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Package filesys provides the file system seam used to read and write
// configuration layer files. It defines small interfaces for the operations
// the layer store needs, with implementations backed by the standard library
// and by afero, so that code touching the disk stays easy to test.
package filesys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// File is the subset of *os.File that AtomicWrite needs.
type File interface {
	io.WriteCloser
	Sync() error
	Name() string
}

// ReadFS is the surface needed to read layer files.
type ReadFS interface {
	ReadFile(string) ([]byte, error)
}

// FileOps is what AtomicWrite needs.
type FileOps interface {
	Open(string) (File, error)
	MkdirAll(string, os.FileMode) error
	CreateTemp(string, string) (File, error)
	Rename(string, string) error
	Remove(string) error
	Chmod(string, os.FileMode) error
}

// FS combines read and write access.
type FS interface {
	ReadFS
	FileOps
}

// OS returns a file system implementation that delegates to the standard library.
func OS() OsFS {
	return OsFS{}
}

// OsFS implements FS against the local disk.
type OsFS struct{}

func (OsFS) ReadFile(p string) ([]byte, error)        { return os.ReadFile(p) }
func (OsFS) MkdirAll(p string, m os.FileMode) error   { return os.MkdirAll(p, m) }
func (OsFS) Rename(old, newName string) error         { return os.Rename(old, newName) }
func (OsFS) Remove(p string) error                    { return os.Remove(p) }
func (OsFS) Chmod(p string, m os.FileMode) error      { return os.Chmod(p, m) }
func (OsFS) Open(p string) (File, error)              { return wrapOS(os.Open(p)) }
func (OsFS) CreateTemp(dir, pat string) (File, error) { return wrapOS(os.CreateTemp(dir, pat)) }

// wrapOS keeps a nil *os.File from turning into a non-nil File.
func wrapOS(f *os.File, err error) (File, error) {
	if err != nil {
		return nil, err
	}
	return f, nil
}

var _ FS = OsFS{}

// IsNotExist reports whether err means the file is missing, for any backend.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// AtomicWrite persists data to dst with the provided file mode. The write is
// crash-safe on local file systems:
//
//  1. temp file in the same dir
//  2. fsync(temp) + close
//  3. chmod(temp, perm)  (so rename doesn’t carry 0600 default)
//  4. rename(temp, dst)
//  5. fsync(dir)
//
// If a step fails the temp file is removed; a failed removal is reported
// together with the original error.
func AtomicWrite(fsys FileOps, dst string, data []byte, perm fs.FileMode) (err error) {
	dir := filepath.Dir(dst)
	tmp, err := fsys.CreateTemp(dir, "."+filepath.Base(dst)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	name := tmp.Name()
	defer func() {
		if err != nil {
			if rerr := fsys.Remove(name); rerr != nil && !IsNotExist(rerr) {
				err = multierr.Append(err, fmt.Errorf("removing temp file %s: %w", name, rerr))
			}
		}
	}()

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	err = multierr.Append(err, tmp.Close())
	if err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = fsys.Chmod(name, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = fsys.Rename(name, dst); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}

	// Directory fsync is best effort; not every backend supports it.
	if d, derr := fsys.Open(dir); derr == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

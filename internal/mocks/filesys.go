// Package mocks holds testify mocks for the internal seams.
package mocks

import (
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/lc/strata/internal/filesys"
)

var _ filesys.FS = (*MockFS)(nil)

// MockFS is a testify mock of filesys.FS.
type MockFS struct {
	mock.Mock
}

// ReadFile mocks the ReadFile method.
func (m *MockFS) ReadFile(p string) ([]byte, error) {
	args := m.Called(p)
	var data []byte
	if args.Get(0) != nil {
		data = args.Get(0).([]byte)
	}
	return data, args.Error(1)
}

// MkdirAll mocks the MkdirAll method.
func (m *MockFS) MkdirAll(p string, mode os.FileMode) error {
	return m.Called(p, mode).Error(0)
}

// Open mocks the Open method.
func (m *MockFS) Open(p string) (filesys.File, error) {
	args := m.Called(p)
	return file(args.Get(0)), args.Error(1)
}

// CreateTemp mocks the CreateTemp method.
func (m *MockFS) CreateTemp(dir, pat string) (filesys.File, error) {
	args := m.Called(dir, pat)
	return file(args.Get(0)), args.Error(1)
}

// Rename mocks the Rename method.
func (m *MockFS) Rename(old, newPath string) error {
	return m.Called(old, newPath).Error(0)
}

// Remove mocks the Remove method.
func (m *MockFS) Remove(p string) error {
	return m.Called(p).Error(0)
}

// Chmod mocks the Chmod method.
func (m *MockFS) Chmod(p string, mode os.FileMode) error {
	return m.Called(p, mode).Error(0)
}

func file(v any) filesys.File {
	if v == nil {
		return nil
	}
	return v.(filesys.File)
}

// MockFile is a testify mock of filesys.File.
type MockFile struct {
	mock.Mock
}

var _ filesys.File = (*MockFile)(nil)

// Write mocks the Write method.
func (f *MockFile) Write(p []byte) (int, error) {
	args := f.Called(p)
	return args.Int(0), args.Error(1)
}

// Sync mocks the Sync method.
func (f *MockFile) Sync() error { return f.Called().Error(0) }

// Close mocks the Close method.
func (f *MockFile) Close() error { return f.Called().Error(0) }

// Name mocks the Name method.
func (f *MockFile) Name() string { return f.Called().String(0) }

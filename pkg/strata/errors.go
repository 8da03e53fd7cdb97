package strata

import (
	"errors"
	"fmt"

	"github.com/lc/strata/pkg/adapter"
)

var (
	// ErrNoName is returned by New when no configuration name is given.
	ErrNoName = errors.New("configuration name is required")
	// ErrUnknownOption is returned by NewFromMap for an option key it does not recognize.
	ErrUnknownOption = errors.New("unknown option")
	// ErrUnsupportedAdapter is returned when the requested format has no adapter.
	ErrUnsupportedAdapter = adapter.ErrUnsupported
	// ErrInvalidLevel is returned when a level is not valid for the operation.
	ErrInvalidLevel = errors.New("invalid level")
)

// Serialization operations reported by SerializationError.
const (
	OpDecode = "decode"
	OpEncode = "encode"
)

// SerializationError reports a layer that could not be converted by the
// configured adapter: a malformed file on read, or a value the format cannot
// represent on save.
type SerializationError struct {
	// Op is OpDecode or OpEncode.
	Op string
	// Format is the adapter name.
	Format string
	// Path is the layer file being read or written.
	Path string
	// Err is the adapter's error.
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	if e.Op == OpEncode {
		return fmt.Sprintf("cannot encode %s as %s: %v", e.Path, e.Format, e.Err)
	}
	return fmt.Sprintf("cannot parse %s as %s: %v", e.Path, e.Format, e.Err)
}

// Unwrap returns the adapter's error.
func (e *SerializationError) Unwrap() error { return e.Err }

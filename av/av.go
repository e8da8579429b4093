package av

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedStream reports input that violates the byte stream or
	// RBSP syntax: illegal zero runs, an all-zero RBSP, a read past the end
	// of the valid bits or a missing start code.
	ErrMalformedStream = errors.New("malformed stream")

	// ErrUndefinedCode reports a value with no code in the selected table,
	// or a level escape the active profile can not represent.
	ErrUndefinedCode = errors.New("undefined code")

	// ErrCapacityExceeded reports a NAL unit, RBSP or bit buffer that would
	// grow past its fixed bound.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// StreamError attaches the byte offset of the offending input to one of the
// sentinel errors above.
type StreamError struct {
	Offset int
	Err    error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%v at byte %d", e.Err, e.Offset)
}

func (e *StreamError) Cause() error  { return e.Err }
func (e *StreamError) Unwrap() error { return e.Err }

func Malformed(offset int, format string, args ...interface{}) error {
	return &StreamError{
		Offset: offset,
		Err:    errors.Wrapf(ErrMalformedStream, format, args...),
	}
}

type NALUReader interface {
	ReadNALU() ([]byte, error)
}

type NALUReadCloser interface {
	NALUReader
	Close() error
}

type NALUWriter interface {
	WriteNALU([]byte) error
}

type NALUWriteCloser interface {
	NALUWriter
	Close() error
}

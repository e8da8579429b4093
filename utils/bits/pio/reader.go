package pio

import (
	"github.com/pkg/errors"

	"github.com/nareix/h264bits/av"
)

// Error reports a short read at byte N.
type Error struct {
	N int
}

func (e Error) Error() string {
	return errors.Wrapf(av.ErrMalformedStream, "pio: short buffer at %d", e.N).Error()
}

func (e Error) Cause() error  { return av.ErrMalformedStream }
func (e Error) Unwrap() error { return av.ErrMalformedStream }

func U16BE(b []byte) (i uint16) {
	i = uint16(b[0])
	i <<= 8
	i |= uint16(b[1])
	return
}

func U24BE(b []byte) (i uint32) {
	i = uint32(b[0])
	i <<= 8
	i |= uint32(b[1])
	i <<= 8
	i |= uint32(b[2])
	return
}

func U32BE(b []byte) (i uint32) {
	i = uint32(b[0])
	i <<= 8
	i |= uint32(b[1])
	i <<= 8
	i |= uint32(b[2])
	i <<= 8
	i |= uint32(b[3])
	return
}

// UBE reads a size byte big endian unsigned integer, 1 <= size <= 4.
func UBE(b []byte, size int) uint32 {
	switch size {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(U16BE(b))
	case 3:
		return U24BE(b)
	case 4:
		return U32BE(b)
	}
	return 0
}

// ReadLength reads a NAL unit length field of size bytes.
func ReadLength(b []byte, n *int, size int) (v uint32, err error) {
	if len(b) < *n+size {
		err = Error{N: *n}
		return
	}
	v = UBE(b[*n:], size)
	*n += size
	return
}

func ReadBytes(b []byte, n *int, length int) (v []byte, err error) {
	if length < 0 || len(b) < *n+length {
		err = Error{N: *n}
		return
	}
	v = b[*n : *n+length]
	*n += length
	return
}

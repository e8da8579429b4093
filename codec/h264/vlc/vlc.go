// Package vlc implements the Exp-Golomb and CAVLC table codes of H.264 and
// packs syntax elements into bit partitions.
package vlc

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nareix/h264bits/av"
)

// ErrLevelPrefix is returned for a coefficient level that needs a
// level_prefix above 15 while the active profile is not a high profile.
var ErrLevelPrefix = errors.Wrap(av.ErrUndefinedCode, "vlc: level_prefix above 15 outside high profiles")

func undefined(format string, args ...interface{}) error {
	return errors.Wrapf(av.ErrUndefinedCode, "vlc: "+format, args...)
}

// ChromaFormat is chroma_format_idc.
type ChromaFormat int

const (
	Chroma400 ChromaFormat = iota
	Chroma420
	Chroma422
	Chroma444
)

func (c ChromaFormat) String() string {
	switch c {
	case Chroma400:
		return "4:0:0"
	case Chroma420:
		return "4:2:0"
	case Chroma422:
		return "4:2:2"
	case Chroma444:
		return "4:4:4"
	}
	return "unknown"
}

// Profile IDs that select the extended level escape.
const (
	ProfileBaseline = 66
	ProfileMain     = 77
	ProfileExtended = 88
	ProfileHigh     = 100
	ProfileHigh10   = 110
	ProfileHigh422  = 122
	ProfileHigh444  = 244
	ProfileCAVLC444 = 44
	ProfileMVCHigh  = 118
	ProfileStereo   = 128
)

// IsFRExtProfile reports whether level_prefix may exceed 15.
func IsFRExtProfile(profileIDC int) bool {
	return profileIDC >= ProfileHigh || profileIDC == ProfileCAVLC444
}

// Code is a variable length code word: the Len low bits of Bits, sent MSB
// first.
type Code struct {
	Len  int
	Bits uint64
}

func (c Code) String() string {
	var sb strings.Builder
	for i := c.Len - 1; i >= 0; i-- {
		if c.Bits>>uint(i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// tableCode returns the code at a table position, failing on the zero
// length that marks undefined combinations.
func tableCode(lens, codes uint8, what string, args ...interface{}) (Code, error) {
	if lens == 0 {
		return Code{}, undefined(what, args...)
	}
	return Code{Len: int(lens), Bits: uint64(codes)}, nil
}

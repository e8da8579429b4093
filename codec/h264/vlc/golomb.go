package vlc

import (
	"github.com/nareix/h264bits/utils/bits"
)

const (
	// MaxUE is the largest value ue(v) carries in this package.
	MaxUE = 1<<32 - 2
	MaxSE = 1<<31 - 1
	MinSE = -(1<<31 - 1)
)

// UELinfo maps v to the code length and the info field below the leading
// one: len = 2m+1, info = v+1-2^m with m = floor(log2(v+1)).
func UELinfo(v int) (n int, info uint32) {
	i := 0
	for nn := (v + 1) >> 1; nn != 0; nn >>= 1 {
		i++
	}
	return i<<1 + 1, uint32(v + 1 - 1<<uint(i))
}

// SELinfo folds a signed value into the ue(v) domain: positive values take
// odd code numbers, non positive values even ones.
func SELinfo(v int) (n int, info uint32) {
	sign := 0
	if v <= 0 {
		sign = 1
	}
	abs := v
	if abs < 0 {
		abs = -abs
	}
	k := abs << 1
	i := 0
	for nn := k >> 1; nn != 0; nn >>= 1 {
		i++
	}
	return i<<1 + 1, uint32(k - 1<<uint(i) + sign)
}

// Symbol2UVLC places the leading one in front of the low len/2 info bits.
func Symbol2UVLC(n int, info uint32) uint64 {
	suffix := uint64(1) << uint(n>>1)
	return suffix | uint64(info)&(suffix-1)
}

func UE(v int) (Code, error) {
	if v < 0 || int64(v) > MaxUE {
		return Code{}, undefined("ue(v) out of range: %d", v)
	}
	n, info := UELinfo(v)
	return Code{Len: n, Bits: Symbol2UVLC(n, info)}, nil
}

func SE(v int) (Code, error) {
	if int64(v) < MinSE || int64(v) > MaxSE {
		return Code{}, undefined("se(v) out of range: %d", v)
	}
	n, info := SELinfo(v)
	return Code{Len: n, Bits: Symbol2UVLC(n, info)}, nil
}

func ReadUE(r *bits.Reader) (v int, err error) {
	var m int
	if m, err = r.CountLeadingZeros(32); err != nil {
		return
	}
	var info uint32
	if info, err = r.ReadBits(m); err != nil {
		return
	}
	v = 1<<uint(m) - 1 + int(info)
	return
}

func ReadSE(r *bits.Reader) (v int, err error) {
	var k int
	if k, err = ReadUE(r); err != nil {
		return
	}
	if k&1 == 1 {
		v = (k + 1) >> 1
	} else {
		v = -(k >> 1)
	}
	return
}

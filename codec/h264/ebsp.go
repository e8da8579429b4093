package h264

import (
	"github.com/pkg/errors"

	"github.com/nareix/h264bits/av"
)

const zeroBytesShortStartCode = 2

// scanEBSP validates b[begin:] and returns the RBSP relative positions at
// which an emulation prevention byte is removed, plus the index of a
// trailing cabac_zero_word 0x03 (or len(b) if there is none).
func scanEBSP(b []byte, begin int) (escapes []int, end int, err error) {
	end = len(b)
	count := 0
	j := begin
	for i := begin; i < len(b); i++ {
		c := b[i]
		if count == zeroBytesShortStartCode {
			if c < 0x03 {
				return nil, 0, av.Malformed(i, "h264: 0x0000%02x inside NAL unit", c)
			}
			if c == 0x03 {
				if i < len(b)-1 && b[i+1] > 0x03 {
					return nil, 0, av.Malformed(i+1, "h264: 0x000003%02x inside NAL unit", b[i+1])
				}
				// cabac_zero_word: the final 0x03 is discarded
				if i == len(b)-1 {
					end = i
					return
				}
				escapes = append(escapes, j-begin)
				i++
				c = b[i]
				count = 0
			}
		}
		if c == 0x00 {
			count++
		} else {
			count = 0
		}
		j++
	}
	return
}

// EBSPToRBSP removes emulation prevention bytes from b[begin:] in place and
// returns the new length of b together with the positions, relative to
// b[begin:], of the RBSP bytes that followed each removed 0x03. On a
// malformed input b is left untouched.
func EBSPToRBSP(b []byte, begin int) (n int, escapes []int, err error) {
	if len(b) < begin {
		return len(b), nil, nil
	}
	var end int
	if escapes, end, err = scanEBSP(b, begin); err != nil {
		return
	}
	j := begin
	k := 0
	for i := begin; i < end; i++ {
		if k < len(escapes) && j-begin == escapes[k] {
			i++
			k++
		}
		b[j] = b[i]
		j++
	}
	n = j
	return
}

// RBSPToEBSP appends rbsp to dst inserting an emulation prevention byte
// wherever two zero bytes are followed by a byte <= 0x03, and after a
// trailing pair of zero bytes.
func RBSPToEBSP(dst, rbsp []byte) []byte {
	count := 0
	for _, c := range rbsp {
		if count == zeroBytesShortStartCode && c <= 0x03 {
			dst = append(dst, 0x03)
			count = 0
		}
		dst = append(dst, c)
		if c == 0x00 {
			count++
		} else {
			count = 0
		}
	}
	if count == zeroBytesShortStartCode {
		dst = append(dst, 0x03)
	}
	return dst
}

// EBSPLen returns len(RBSPToEBSP(nil, rbsp)) without allocating.
func EBSPLen(rbsp []byte) int {
	n := len(rbsp)
	count := 0
	for _, c := range rbsp {
		if count == zeroBytesShortStartCode && c <= 0x03 {
			n++
			count = 0
		}
		if c == 0x00 {
			count++
		} else {
			count = 0
		}
	}
	if count == zeroBytesShortStartCode {
		n++
	}
	return n
}

// RBSPToEBSPAt re-inserts emulation prevention bytes at the positions
// recorded by EBSPToRBSP.
func RBSPToEBSPAt(dst, rbsp []byte, escapes []int) ([]byte, error) {
	prev := 0
	for _, p := range escapes {
		if p < prev || p > len(rbsp) {
			return dst, errors.Errorf("h264: escape position %d out of order or range", p)
		}
		dst = append(dst, rbsp[prev:p]...)
		dst = append(dst, 0x03)
		prev = p
	}
	return append(dst, rbsp[prev:]...), nil
}

// RBSPToSODB locates the rbsp_stop_one_bit and returns the length of rbsp
// with trailing zero bytes trimmed. The stop bit itself is kept.
func RBSPToSODB(rbsp []byte) (int, error) {
	n := len(rbsp)
	for n > 0 && rbsp[n-1] == 0 {
		n--
	}
	if n == 0 {
		return 0, av.Malformed(0, "h264: all zero data sequence in RBSP")
	}
	return n, nil
}

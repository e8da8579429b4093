package annexb

import (
	"io"

	"github.com/nareix/h264bits/codec/h264"
)

// Writer frames NAL units with start codes.
type Writer struct {
	w     io.Writer
	first bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true}
}

func (w *Writer) startCode(typ h264.NALUType, scLen int) []byte {
	if scLen != 3 && scLen != 4 {
		scLen = 3
		if w.first || typ.IsParameterSet() || typ == h264.NALU_AUD {
			scLen = 4
		}
	}
	w.first = false
	if scLen == 4 {
		return h264.LongStartCodeBytes
	}
	return h264.StartCodeBytes
}

func (w *Writer) write(sc, b []byte) (err error) {
	if _, err = w.w.Write(sc); err != nil {
		return
	}
	_, err = w.w.Write(b)
	return
}

// WriteUnit escapes n if it is not already in EBSP form and writes it with
// n.StartCodeLen, or the default length when that is unset.
func (w *Writer) WriteUnit(n *h264.NALU) (err error) {
	if n.State() != h264.StateEBSP {
		if err = n.Escape(); err != nil {
			return
		}
	}
	return w.write(w.startCode(n.Type, n.StartCodeLen), n.Buf)
}

// WriteNALU writes b, which must already be in EBSP form.
func (w *Writer) WriteNALU(b []byte) error {
	return w.write(w.startCode(h264.TypeOf(b), 0), b)
}

// Join is the in-memory form of Writer.
func Join(nalus [][]byte) []byte {
	n := 0
	for _, nalu := range nalus {
		n += len(h264.LongStartCodeBytes) + len(nalu)
	}
	b := make([]byte, 0, n)
	for i, nalu := range nalus {
		typ := h264.TypeOf(nalu)
		if i == 0 || typ.IsParameterSet() || typ == h264.NALU_AUD {
			b = append(b, h264.LongStartCodeBytes...)
		} else {
			b = append(b, h264.StartCodeBytes...)
		}
		b = append(b, nalu...)
	}
	return b
}

// Split cuts an in-memory Annex B buffer into units. ok is false when b
// contains no start code.
func Split(b []byte) (out [][]byte, ok bool) {
	const S = 0
	const S0 = 1
	const S00 = 2

	s := S
	zeros := 0
	from := 0
	cut := func(to, next int) {
		if from < to {
			out = append(out, b[from:to])
		}
		from = next
	}
	for i, c := range b {
		switch c {
		case 0:
			zeros++
			if s < S00 {
				s++
			}
		case 1:
			if s == S00 {
				cut(i-zeros, i+1)
				ok = true
			}
			s = S
			zeros = 0
		default:
			s = S
			zeros = 0
		}
	}
	if !ok {
		return nil, false
	}
	// trailing_zero_8bits
	end := len(b)
	for end > from && b[end-1] == 0 {
		end--
	}
	cut(end, 0)
	return
}

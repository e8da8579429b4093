package h264

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/nareix/h264bits/av"
	"github.com/nareix/h264bits/utils/bits/pio"
)

func checkLengthSize(size int) error {
	switch size {
	case 1, 2, 4:
		return nil
	}
	return errors.Errorf("h264: invalid AVCC length size %d", size)
}

// SplitAVCC splits length prefixed NAL units. It fails unless b is
// consumed exactly.
func SplitAVCC(b []byte, lengthSize int) (out [][]byte, err error) {
	if err = checkLengthSize(lengthSize); err != nil {
		return
	}
	i := 0
	for i < len(b) {
		var blen uint32
		if blen, err = pio.ReadLength(b, &i, lengthSize); err != nil {
			return nil, err
		}
		var nalu []byte
		if nalu, err = pio.ReadBytes(b, &i, int(blen)); err != nil {
			return nil, av.Malformed(i, "h264: AVCC unit of %d bytes truncated", blen)
		}
		out = append(out, nalu)
	}
	return
}

func JoinAVCC(nalus [][]byte, lengthSize int) ([]byte, error) {
	if err := checkLengthSize(lengthSize); err != nil {
		return nil, err
	}
	max := 1<<uint(lengthSize*8) - 1
	n := 0
	for _, nalu := range nalus {
		if len(nalu) > max {
			return nil, errors.Wrapf(av.ErrCapacityExceeded, "h264: %d byte unit does not fit a %d byte length", len(nalu), lengthSize)
		}
		n += len(nalu) + lengthSize
	}
	b := make([]byte, n)
	i := 0
	for _, nalu := range nalus {
		pio.WriteLength(b, &i, uint32(len(nalu)), lengthSize)
		pio.WriteBytes(b, &i, nalu)
	}
	return b, nil
}

// AVCCReader reads length prefixed NAL units from a stream.
type AVCCReader struct {
	r          *bufio.Reader
	LengthSize int
	MaxSize    int
	off        int64
}

func NewAVCCReader(r io.Reader, lengthSize int) *AVCCReader {
	return &AVCCReader{
		r:          bufio.NewReader(r),
		LengthSize: lengthSize,
		MaxSize:    MaxNALUSize,
	}
}

func (r *AVCCReader) ReadNALU() (b []byte, err error) {
	if err = checkLengthSize(r.LengthSize); err != nil {
		return
	}
	var hdr [4]byte
	if _, err = io.ReadFull(r.r, hdr[:r.LengthSize]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = av.Malformed(int(r.off), "h264: truncated AVCC length")
		}
		return
	}
	l := int(pio.UBE(hdr[:], r.LengthSize))
	r.off += int64(r.LengthSize)
	if l > r.MaxSize {
		// skip the unit so the next call starts at a length field
		d, derr := r.r.Discard(l)
		at := r.off
		r.off += int64(d)
		if derr != nil {
			return nil, av.Malformed(int(r.off), "h264: AVCC unit of %d bytes truncated", l)
		}
		return nil, errors.Wrapf(av.ErrCapacityExceeded, "h264: AVCC unit of %d bytes at %d exceeds %d", l, at, r.MaxSize)
	}
	b = make([]byte, l)
	if _, err = io.ReadFull(r.r, b); err != nil {
		return nil, av.Malformed(int(r.off), "h264: AVCC unit of %d bytes truncated", l)
	}
	r.off += int64(l)
	return
}

// AVCCWriter writes length prefixed NAL units.
type AVCCWriter struct {
	w          io.Writer
	LengthSize int
	hdr        [4]byte
}

func NewAVCCWriter(w io.Writer, lengthSize int) *AVCCWriter {
	return &AVCCWriter{w: w, LengthSize: lengthSize}
}

func (w *AVCCWriter) WriteNALU(b []byte) (err error) {
	if err = checkLengthSize(w.LengthSize); err != nil {
		return
	}
	if len(b) > 1<<uint(w.LengthSize*8)-1 {
		return errors.Wrapf(av.ErrCapacityExceeded, "h264: %d byte unit does not fit a %d byte length", len(b), w.LengthSize)
	}
	pio.PutUBE(w.hdr[:], uint32(len(b)), w.LengthSize)
	if _, err = w.w.Write(w.hdr[:w.LengthSize]); err != nil {
		return
	}
	_, err = w.w.Write(b)
	return
}

package annexb

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/nareix/h264bits/av"
	"github.com/nareix/h264bits/codec/h264"
)

const DefaultBufferSize = 64 * 1024

// Reader locates start code delimited NAL units in a byte stream.
//
//	byte_stream_nal_unit(NumBytesInNALunit) {
//	    while (next_bits(24) != 0x000001 &&
//	           next_bits(32) != 0x00000001)
//	        leading_zero_8bits /* equal to 0x00 */
//	    if (next_bits(24) != 0x000001)
//	        zero_byte /* equal to 0x00 */
//	    if (more_data_in_byte_stream()) {
//	        start_code_prefix_one_3bytes /* equal to 0x000001 */
//	        nal_unit(NumBytesInNALunit)
//	    }
//	    while (more_data_in_byte_stream() &&
//	           next_bits(24) != 0x000001 &&
//	           next_bits(32) != 0x00000001)
//	        trailing_zero_8bits /* equal to 0x00 */
//	}
type Reader struct {
	MaxSize int

	r   *bufio.Reader
	off int64

	// set once a start code has been consumed and the next unit's payload
	// follows
	inUnit bool
	scLen  int
	eof    bool

	buf []byte
}

func NewReader(r io.Reader) *Reader {
	return NewReaderSize(r, DefaultBufferSize)
}

func NewReaderSize(r io.Reader, size int) *Reader {
	return &Reader{
		MaxSize: h264.MaxNALUSize,
		r:       bufio.NewReaderSize(r, size),
	}
}

// Offset returns the number of bytes consumed from the underlying reader.
func (r *Reader) Offset() int64 {
	return r.off
}

func (r *Reader) readByte() (c byte, err error) {
	if c, err = r.r.ReadByte(); err != nil {
		if err == io.EOF {
			r.eof = true
		}
		return
	}
	r.off++
	return
}

// seek consumes leading_zero_8bits and the first start code. The stream may
// open directly with 00 00 01. Anything other than zero bytes before it is
// malformed: the junk is skipped up to the next start code and reported
// once, at the offset of its first byte.
func (r *Reader) seek() (err error) {
	zeros := 0
	junk := int64(-1)
	for {
		var c byte
		if c, err = r.readByte(); err != nil {
			if err == io.EOF && junk >= 0 {
				err = av.Malformed(int(junk), "annexb: %d bytes without start code", r.off-junk)
			}
			return
		}
		switch {
		case c == 0:
			zeros++
		case c == 1 && zeros >= 2:
			r.inUnit = true
			r.scLen = 3
			if zeros >= 3 {
				r.scLen = 4
			}
			if junk >= 0 {
				return av.Malformed(int(junk), "annexb: %d bytes before start code", r.off-int64(zeros)-1-junk)
			}
			return
		default:
			if junk < 0 {
				junk = r.off - 1
			}
			zeros = 0
		}
	}
}

// unit reads the payload of the current unit into r.buf and consumes the
// start code that follows it, if any.
func (r *Reader) unit() (scLen int, start int64, err error) {
	scLen = r.scLen
	start = r.off
	r.buf = r.buf[:0]
	zeros := 0
	overflow := false
	for {
		var c byte
		if c, err = r.readByte(); err != nil {
			if err != io.EOF {
				return
			}
			// last unit, no trailing start code
			r.inUnit = false
			err = nil
			break
		}
		if c == 1 && zeros >= 2 {
			r.scLen = 3
			if zeros >= 3 {
				r.scLen = 4
			}
			break
		}
		if c == 0 {
			zeros++
			continue
		}
		if overflow || len(r.buf)+zeros+1 > r.MaxSize {
			overflow = true
			zeros = 0
			continue
		}
		for ; zeros > 0; zeros-- {
			r.buf = append(r.buf, 0)
		}
		r.buf = append(r.buf, c)
	}
	if overflow {
		err = errors.Wrapf(av.ErrCapacityExceeded, "annexb: NAL unit at %d exceeds %d bytes", start, r.MaxSize)
	}
	return
}

// next returns the raw bytes of the next non-empty unit. The slice is only
// valid until the following call.
func (r *Reader) next() (b []byte, scLen int, start int64, err error) {
	for {
		if !r.inUnit {
			if r.eof {
				err = io.EOF
				return
			}
			if err = r.seek(); err != nil {
				return
			}
		}
		if scLen, start, err = r.unit(); err != nil {
			return
		}
		if len(r.buf) > 0 {
			b = r.buf
			return
		}
	}
}

// Next copies the next unit into n in EBSP form and parses its header.
// It returns io.EOF once the stream is exhausted.
func (r *Reader) Next(n *h264.NALU) (err error) {
	var b []byte
	var scLen int
	var start int64
	if b, scLen, start, err = r.next(); err != nil {
		return
	}
	n.Reset()
	if err = n.SetPayload(b); err != nil {
		return
	}
	n.StartCodeLen = scLen
	n.Offset = start
	if err = n.ParseHeader(); err != nil {
		var se *av.StreamError
		if errors.As(err, &se) {
			se.Offset += int(start)
		}
	}
	return
}

// ReadNALU returns a copy of the next unit's EBSP bytes, header included.
func (r *Reader) ReadNALU() ([]byte, error) {
	b, _, _, err := r.next()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

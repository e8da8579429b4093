package bits

import (
	"github.com/pkg/errors"

	"github.com/nareix/h264bits/av"
)

// Writer accumulates bits MSB first into a bounded byte buffer. Completed
// bytes are flushed as soon as they fill; the partial byte stays in the
// accumulator until more bits or an alignment call complete it.
type Writer struct {
	buf  []byte
	pos  int
	bits byte
	left int
}

func NewWriter(capacity int) *Writer {
	return &Writer{
		buf:  make([]byte, capacity),
		left: 8,
	}
}

func (w *Writer) Reset() {
	w.pos = 0
	w.bits = 0
	w.left = 8
}

// BitLen returns the number of bits written so far.
func (w *Writer) BitLen() int {
	return w.pos*8 + (8 - w.left)
}

// Len returns the number of complete bytes.
func (w *Writer) Len() int {
	return w.pos
}

// Pending returns the number of bits held in the accumulator.
func (w *Writer) Pending() int {
	return 8 - w.left
}

func (w *Writer) Aligned() bool {
	return w.left == 8
}

func (w *Writer) Cap() int {
	return len(w.buf)
}

// Bytes returns the complete bytes. The slice aliases the writer buffer.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.pos]
}

func (w *Writer) reserve(n int) error {
	if (w.BitLen()+n)/8 > len(w.buf) {
		return errors.Wrapf(av.ErrCapacityExceeded, "bits: writing %d bits at bit %d overflows %d byte buffer",
			n, w.BitLen(), len(w.buf))
	}
	return nil
}

func (w *Writer) put(bits uint32, n int) {
	for n > 0 {
		k := n
		if k > w.left {
			k = w.left
		}
		chunk := byte((bits >> uint(n-k)) & (1<<uint(k) - 1))
		w.bits = w.bits<<uint(k) | chunk
		w.left -= k
		n -= k
		if w.left == 0 {
			w.buf[w.pos] = w.bits
			w.pos++
			w.bits = 0
			w.left = 8
		}
	}
}

// WriteBits writes the n low bits of bits, 0 <= n <= 32.
func (w *Writer) WriteBits(bits uint32, n int) (err error) {
	if n < 0 || n > 32 {
		return errors.Errorf("bits: invalid write length %d", n)
	}
	if err = w.reserve(n); err != nil {
		return
	}
	w.put(bits, n)
	return
}

// WriteBits64 writes the n low bits of bits, 0 <= n <= 64, as a high and a
// low 32 bit half.
func (w *Writer) WriteBits64(bits uint64, n int) (err error) {
	if n < 0 || n > 64 {
		return errors.Errorf("bits: invalid write length %d", n)
	}
	if err = w.reserve(n); err != nil {
		return
	}
	if n > 32 {
		w.put(uint32(bits>>32), n-32)
		n = 32
	}
	w.put(uint32(bits), n)
	return
}

func (w *Writer) WriteBit(b uint) error {
	return w.WriteBits(uint32(b&1), 1)
}

// AlignOnes pads the partial byte with 1 bits up to the next byte boundary
// and returns the number of stuffing bits.
func (w *Writer) AlignOnes() (n int, err error) {
	if w.left == 8 {
		return
	}
	n = w.left
	err = w.WriteBits(1<<uint(n)-1, n)
	return
}

// TrailingBits writes rbsp_trailing_bits: a stop bit followed by zero bits
// up to the byte boundary.
func (w *Writer) TrailingBits() (err error) {
	if err = w.WriteBits(1, 1); err != nil {
		return
	}
	if w.left != 8 {
		err = w.WriteBits(0, w.left)
	}
	return
}

// GetBits reads n bits (n <= 32) MSB first starting at bit offset of buf,
// where only the first bitLen bits are valid.
func GetBits(buf []byte, offset, bitLen, n int) (v uint32, err error) {
	if n < 0 || n > 32 {
		return 0, errors.Errorf("bits: invalid read length %d", n)
	}
	if offset < 0 || offset+n > bitLen || (offset+n+7)/8 > len(buf) {
		return 0, av.Malformed(offset>>3, "bits: reading %d bits at bit %d past %d", n, offset, bitLen)
	}
	for i := 0; i < n; i++ {
		p := offset + i
		v = v<<1 | uint32(buf[p>>3]>>uint(7-p&7))&1
	}
	return
}

// Reader extracts bits from a byte buffer with a running bit cursor.
type Reader struct {
	buf    []byte
	bitLen int
	pos    int
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b, bitLen: len(b) * 8}
}

// NewReaderBits creates a reader that refuses to consume past bitLen bits.
func NewReaderBits(b []byte, bitLen int) *Reader {
	if bitLen > len(b)*8 {
		bitLen = len(b) * 8
	}
	return &Reader{buf: b, bitLen: bitLen}
}

func (r *Reader) Offset() int {
	return r.pos
}

func (r *Reader) Available() int {
	return r.bitLen - r.pos
}

func (r *Reader) ByteAligned() bool {
	return r.pos&7 == 0
}

// Peek returns the next n bits without advancing.
func (r *Reader) Peek(n int) (uint32, error) {
	return GetBits(r.buf, r.pos, r.bitLen, n)
}

func (r *Reader) ReadBits(n int) (v uint32, err error) {
	if v, err = r.Peek(n); err != nil {
		return
	}
	r.pos += n
	return
}

func (r *Reader) ReadBits64(n int) (v uint64, err error) {
	if n < 0 || n > 64 {
		return 0, errors.Errorf("bits: invalid read length %d", n)
	}
	if n > r.Available() {
		return 0, av.Malformed(r.pos>>3, "bits: reading %d bits at bit %d past %d", n, r.pos, r.bitLen)
	}
	var hi, lo uint32
	if n > 32 {
		if hi, err = r.ReadBits(n - 32); err != nil {
			return
		}
		n = 32
	}
	if lo, err = r.ReadBits(n); err != nil {
		return
	}
	v = uint64(hi)<<uint(n) | uint64(lo)
	return
}

// BitsAt returns n bits, n <= 64, from bit offset off without moving the
// cursor.
func (r *Reader) BitsAt(off, n int) (v uint64, err error) {
	if n < 0 || n > 64 {
		return 0, errors.Errorf("bits: invalid read length %d", n)
	}
	var hi, lo uint32
	if n > 32 {
		if hi, err = GetBits(r.buf, off, r.bitLen, n-32); err != nil {
			return
		}
		off += n - 32
		n = 32
	}
	if lo, err = GetBits(r.buf, off, r.bitLen, n); err != nil {
		return
	}
	return uint64(hi)<<uint(n) | uint64(lo), nil
}

func (r *Reader) ReadBit() (uint, error) {
	v, err := r.ReadBits(1)
	return uint(v), err
}

func (r *Reader) ReadFlag() (bool, error) {
	v, err := r.ReadBits(1)
	return v != 0, err
}

func (r *Reader) Skip(n int) error {
	if n < 0 || n > r.Available() {
		return av.Malformed(r.pos>>3, "bits: skipping %d bits at bit %d past %d", n, r.pos, r.bitLen)
	}
	r.pos += n
	return nil
}

// CountLeadingZeros consumes zero bits up to and including the first 1 bit
// and returns how many zeros preceded it. At most max zeros are accepted.
func (r *Reader) CountLeadingZeros(max int) (n int, err error) {
	for {
		var b uint
		if b, err = r.ReadBit(); err != nil {
			return
		}
		if b == 1 {
			return
		}
		n++
		if n > max {
			return n, av.Malformed(r.pos>>3, "bits: more than %d leading zero bits", max)
		}
	}
}

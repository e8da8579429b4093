package annexb

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nareix/h264bits/av"
	"github.com/nareix/h264bits/codec/h264"
)

var (
	sps = []byte{0x67, 0x42, 0xc0, 0x1e, 0xda, 0x02, 0x80}
	pps = []byte{0x68, 0xce, 0x3c, 0x80}
	idr = []byte{0x65, 0x88, 0x84, 0x00, 0x00, 0x03, 0x00, 0x40}
	p   = []byte{0x41, 0x9a, 0x02, 0x00}
)

func readAll(t *testing.T, b []byte) (units []*h264.NALU) {
	r := NewReader(bytes.NewReader(b))
	for {
		n := h264.NewNALU(h264.MaxNALUSize)
		err := r.Next(n)
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
		units = append(units, n)
	}
}

func TestReader(t *testing.T) {
	var stream []byte
	stream = append(stream, 0, 0, 0, 1)
	stream = append(stream, sps...)
	stream = append(stream, 0, 0, 0, 1)
	stream = append(stream, pps...)
	stream = append(stream, 0, 0, 1)
	stream = append(stream, idr...)
	// trailing_zero_8bits before the next start code
	stream = append(stream, 0, 0, 0, 0, 1)
	stream = append(stream, p...)

	units := readAll(t, stream)
	require.Len(t, units, 4)

	assert.Equal(t, sps, units[0].Buf)
	assert.Equal(t, h264.NALU_SPS, units[0].Type)
	assert.Equal(t, 4, units[0].StartCodeLen)
	assert.Equal(t, int64(4), units[0].Offset)

	assert.Equal(t, pps, units[1].Buf)
	assert.Equal(t, 4, units[1].StartCodeLen)

	assert.Equal(t, idr, units[2].Buf)
	assert.Equal(t, h264.NALU_IDR, units[2].Type)
	assert.Equal(t, 3, units[2].StartCodeLen)

	// the last unit has no start code after it; its final zero is trailing_zero_8bits and is dropped
	assert.Equal(t, []byte{0x41, 0x9a, 0x02}, units[3].Buf)
	assert.Equal(t, 4, units[3].StartCodeLen)

	require.NoError(t, units[2].Unescape())
	assert.Equal(t, []byte{0x65, 0x88, 0x84, 0x00, 0x00, 0x00, 0x40}, units[2].Buf)
}

func TestReaderShortFirstStartCode(t *testing.T) {
	stream := append([]byte{0, 0, 1}, idr...)
	stream = append(stream, 0, 0, 1)
	stream = append(stream, p[:3]...)

	r := NewReader(bytes.NewReader(stream))
	n := h264.NewNALU(h264.MaxNALUSize)
	require.NoError(t, r.Next(n))
	assert.Equal(t, idr, n.Buf)
	assert.Equal(t, 3, n.StartCodeLen)
	assert.Equal(t, int64(3), n.Offset)

	require.NoError(t, r.Next(n))
	assert.Equal(t, p[:3], n.Buf)

	assert.Equal(t, io.EOF, r.Next(n))
	assert.Equal(t, io.EOF, r.Next(n))
}

func TestReaderEmpty(t *testing.T) {
	for _, b := range [][]byte{nil, {0, 0}, {0, 0, 1}, {0, 0, 0, 1, 0, 0, 1}} {
		r := NewReader(bytes.NewReader(b))
		_, err := r.ReadNALU()
		assert.Equal(t, io.EOF, err, "%x", b)
	}
}

func TestReaderGarbage(t *testing.T) {
	stream := append([]byte{0, 0x42, 0, 0, 1}, p[:3]...)
	r := NewReader(bytes.NewReader(stream))
	_, err := r.ReadNALU()
	var se *av.StreamError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Offset)
	assert.True(t, errors.Is(err, av.ErrMalformedStream))

	b, err := r.ReadNALU()
	require.NoError(t, err)
	assert.Equal(t, p[:3], b)
}

func TestReaderGarbageReportedOnce(t *testing.T) {
	stream := append([]byte{0xaa, 0xbb, 0xcc, 0, 0, 1}, p[:3]...)
	stream = append(stream, 0, 0, 1)
	stream = append(stream, pps...)
	r := NewReader(bytes.NewReader(stream))

	_, err := r.ReadNALU()
	var se *av.StreamError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Offset)

	b, err := r.ReadNALU()
	require.NoError(t, err)
	assert.Equal(t, p[:3], b)
	b, err = r.ReadNALU()
	require.NoError(t, err)
	assert.Equal(t, pps, b)
	_, err = r.ReadNALU()
	assert.Equal(t, io.EOF, err)

	// junk with no start code at all is one error, then EOF
	r = NewReader(bytes.NewReader([]byte{0xaa, 0, 0xbb, 0, 0}))
	_, err = r.ReadNALU()
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Offset)
	_, err = r.ReadNALU()
	assert.Equal(t, io.EOF, err)
}

func TestReaderForbiddenBit(t *testing.T) {
	stream := []byte{0, 0, 0, 1, 0xe5, 0x11}
	r := NewReader(bytes.NewReader(stream))
	n := h264.NewNALU(16)
	err := r.Next(n)
	var se *av.StreamError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 4, se.Offset)
}

func TestReaderCapacity(t *testing.T) {
	big := bytes.Repeat([]byte{0x41}, 32)
	var stream []byte
	stream = append(stream, 0, 0, 0, 1)
	stream = append(stream, big...)
	stream = append(stream, 0, 0, 0, 1)
	stream = append(stream, pps...)

	r := NewReader(bytes.NewReader(stream))
	r.MaxSize = 16
	_, err := r.ReadNALU()
	assert.True(t, errors.Is(err, av.ErrCapacityExceeded))

	b, err := r.ReadNALU()
	require.NoError(t, err)
	assert.Equal(t, pps, b)

	// a NALU smaller than the demuxed unit
	r = NewReader(bytes.NewReader(stream))
	n := h264.NewNALU(8)
	assert.True(t, errors.Is(r.Next(n), av.ErrCapacityExceeded))
	require.NoError(t, r.Next(n))
	assert.Equal(t, pps, n.Buf)
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	n := h264.NewNALU(h264.MaxNALUSize)
	n.Type = h264.NALU_SLICE
	n.RefIdc = h264.PRIORITY_HIGH
	require.NoError(t, n.MarshalHeader())
	require.NoError(t, n.Append(0x9a, 0x00, 0x00, 0x01, 0x80))
	require.NoError(t, w.WriteUnit(n))
	assert.Equal(t, h264.StateEBSP, n.State())

	require.NoError(t, w.WriteNALU(sps))
	require.NoError(t, w.WriteNALU(p))

	want := []byte{0, 0, 0, 1, 0x41, 0x9a, 0x00, 0x00, 0x03, 0x01, 0x80}
	want = append(want, 0, 0, 0, 1)
	want = append(want, sps...)
	want = append(want, 0, 0, 1)
	want = append(want, p...)
	assert.Equal(t, want, buf.Bytes())
}

func TestWriterReaderRoundTrip(t *testing.T) {
	nalus := [][]byte{sps, pps, idr, {0x41, 0x9a, 0x11}, {0x01, 0x02}}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, nalu := range nalus {
		require.NoError(t, w.WriteNALU(nalu))
	}
	assert.Equal(t, Join(nalus), buf.Bytes())

	r := NewReader(&buf)
	for _, nalu := range nalus {
		b, err := r.ReadNALU()
		require.NoError(t, err)
		assert.Equal(t, nalu, b)
	}
	_, err := r.ReadNALU()
	assert.Equal(t, io.EOF, err)
}

func TestSplit(t *testing.T) {
	b := Join([][]byte{sps, pps, idr})
	b = append(b, 0, 0)
	out, ok := Split(b)
	require.True(t, ok)
	assert.Equal(t, [][]byte{sps, pps, idr}, out)

	_, ok = Split(idr)
	assert.False(t, ok)
}

package h264

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nareix/h264bits/av"
)

func TestEBSPToRBSP(t *testing.T) {
	// SPS from an Annex B sample with two emulation prevention bytes
	ebsp := []byte{0x67, 0x64, 0x00, 0x0A, 0xAC, 0x72, 0x84, 0x44, 0x26, 0x84, 0x00, 0x00,
		0x03, 0x00, 0x04, 0x00, 0x00, 0x03, 0x00, 0xCA, 0x3C, 0x48, 0x96, 0x11, 0x80}
	rbsp := []byte{0x67, 0x64, 0x00, 0x0A, 0xAC, 0x72, 0x84, 0x44, 0x26, 0x84, 0x00, 0x00,
		0x00, 0x04, 0x00, 0x00, 0x00, 0xCA, 0x3C, 0x48, 0x96, 0x11, 0x80}

	b := append([]byte(nil), ebsp...)
	n, escapes, err := EBSPToRBSP(b, 1)
	require.NoError(t, err)
	assert.Equal(t, rbsp, b[:n])
	assert.Equal(t, []int{11, 15}, escapes)

	back, err := RBSPToEBSPAt([]byte{0x67}, rbsp[1:], escapes)
	require.NoError(t, err)
	assert.Equal(t, ebsp, back)
	assert.Equal(t, ebsp, RBSPToEBSP([]byte{0x67}, rbsp[1:]))
}

func TestEBSPCabacZeroWord(t *testing.T) {
	b := []byte{0x65, 0x88, 0x00, 0x00, 0x03}
	n, escapes, err := EBSPToRBSP(b, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Empty(t, escapes)
	assert.Equal(t, []byte{0x65, 0x88, 0x00, 0x00}, b[:n])
}

func TestEBSPMalformed(t *testing.T) {
	for _, in := range [][]byte{
		{0x65, 0x00, 0x00, 0x03, 0x04},
		{0x65, 0x11, 0x00, 0x00, 0x01, 0x22},
		{0x65, 0x00, 0x00, 0x00},
		{0x65, 0x00, 0x00, 0x02},
	} {
		b := append([]byte(nil), in...)
		_, _, err := EBSPToRBSP(b, 1)
		assert.True(t, errors.Is(err, av.ErrMalformedStream), "%x", in)
		assert.Equal(t, in, b, "input must be left untouched")
	}

	var se *av.StreamError
	_, _, err := EBSPToRBSP([]byte{0x65, 0x00, 0x00, 0x03, 0x04}, 1)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 4, se.Offset)
}

func TestEscapeRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		rbsp := make([]byte, 1+rnd.Intn(64))
		for k := range rbsp {
			// bias towards zero runs
			if rnd.Intn(3) == 0 {
				rbsp[k] = byte(rnd.Intn(256))
			} else {
				rbsp[k] = byte(rnd.Intn(4))
			}
		}
		ebsp := RBSPToEBSP([]byte{0x41}, rbsp)
		assert.Equal(t, len(ebsp)-1, EBSPLen(rbsp))
		assert.False(t, bytes.Contains(ebsp, []byte{0, 0, 0}))
		assert.False(t, bytes.Contains(ebsp, []byte{0, 0, 1}))
		assert.False(t, bytes.Contains(ebsp, []byte{0, 0, 2}))

		n, escapes, err := EBSPToRBSP(ebsp, 1)
		require.NoError(t, err, "%x", rbsp)
		assert.Equal(t, rbsp, ebsp[1:n])

		again, err := RBSPToEBSPAt(nil, rbsp, escapes)
		require.NoError(t, err)
		want := RBSPToEBSP(nil, rbsp)
		if bytes.HasSuffix(want, []byte{0, 0, 3}) {
			// trailing cabac_zero_word escape is not recorded
			again = append(again, 0x03)
		}
		assert.Equal(t, want, again)
	}
}

func TestRBSPToSODB(t *testing.T) {
	n, err := RBSPToSODB([]byte{0x12, 0x80, 0x00, 0x00})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = RBSPToSODB([]byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = RBSPToSODB([]byte{0x00, 0x00})
	assert.True(t, errors.Is(err, av.ErrMalformedStream))
}

func TestNALUHeader(t *testing.T) {
	n := NewNALU(16)
	require.NoError(t, n.SetPayload([]byte{0x67, 0x42, 0x00, 0x1e}))
	require.NoError(t, n.ParseHeader())
	assert.Equal(t, NALU_SPS, n.Type)
	assert.Equal(t, PRIORITY_HIGHEST, n.RefIdc)
	assert.Nil(t, n.MVC)
	assert.Equal(t, StatePopulated, n.State())

	require.NoError(t, n.SetPayload([]byte{0xe5}))
	assert.True(t, errors.Is(n.ParseHeader(), av.ErrMalformedStream))
}

func TestNALUMVCHeader(t *testing.T) {
	n := NewNALU(16)
	n.Type = NALU_SLC_EXT
	n.RefIdc = PRIORITY_HIGH
	n.MVC = &MVCExtension{
		NonIDRFlag:     true,
		PriorityID:     5,
		ViewID:         513,
		TemporalID:     3,
		AnchorPicFlag:  true,
		InterViewFlag:  false,
		ReservedOneBit: 1,
	}
	require.NoError(t, n.MarshalHeader())
	require.NoError(t, n.Append(0x88, 0x80))
	assert.Equal(t, 6, n.Len())

	m := NewNALU(16)
	require.NoError(t, m.SetPayload(n.Buf))
	require.NoError(t, m.ParseHeader())
	assert.Equal(t, NALU_SLC_EXT, m.Type)
	assert.Equal(t, PRIORITY_HIGH, m.RefIdc)
	require.NotNil(t, m.MVC)
	assert.Equal(t, *n.MVC, *m.MVC)
	assert.Equal(t, []byte{0x88, 0x80}, m.Payload())
}

func TestNALUEscapeUnescape(t *testing.T) {
	n := NewNALU(MaxNALUSize)
	n.Type = NALU_IDR
	n.RefIdc = PRIORITY_HIGHEST
	require.NoError(t, n.MarshalHeader())
	require.NoError(t, n.Append(0x88, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x80))
	rbsp := append([]byte(nil), n.Buf...)

	require.NoError(t, n.Escape())
	assert.Equal(t, StateEBSP, n.State())
	assert.Equal(t, []byte{0x65, 0x88, 0x00, 0x00, 0x03, 0x01, 0x00, 0x00, 0x03, 0x00, 0x80}, n.Buf)

	require.NoError(t, n.Unescape())
	assert.Equal(t, StateRBSP, n.State())
	assert.Equal(t, rbsp, n.Buf)
	assert.Equal(t, []int{3, 6}, n.Escapes)

	l, err := n.SODBLen()
	require.NoError(t, err)
	assert.Equal(t, n.Len(), l)
}

func TestNALUCapacity(t *testing.T) {
	n := NewNALU(4)
	assert.True(t, errors.Is(n.SetPayload(make([]byte, 5)), av.ErrCapacityExceeded))

	require.NoError(t, n.SetPayload([]byte{0x41, 0x00, 0x00, 0x01}))
	assert.True(t, errors.Is(n.Escape(), av.ErrCapacityExceeded))
	assert.Equal(t, StatePopulated, n.State())
}

func TestAVCC(t *testing.T) {
	nalus := [][]byte{{0x67, 0x42}, {0x68, 0xce, 0x38}, {0x65}}
	for _, size := range []int{1, 2, 4} {
		b, err := JoinAVCC(nalus, size)
		require.NoError(t, err)
		out, err := SplitAVCC(b, size)
		require.NoError(t, err)
		assert.Equal(t, nalus, out)

		var buf bytes.Buffer
		w := NewAVCCWriter(&buf, size)
		for _, nalu := range nalus {
			require.NoError(t, w.WriteNALU(nalu))
		}
		assert.Equal(t, b, buf.Bytes())

		r := NewAVCCReader(&buf, size)
		for _, nalu := range nalus {
			got, err := r.ReadNALU()
			require.NoError(t, err)
			assert.Equal(t, nalu, got)
		}
		_, err = r.ReadNALU()
		assert.Equal(t, io.EOF, err)
	}

	_, err := SplitAVCC([]byte{0, 0, 0, 9, 1}, 4)
	assert.True(t, errors.Is(err, av.ErrMalformedStream))

	_, err = JoinAVCC([][]byte{make([]byte, 256)}, 1)
	assert.True(t, errors.Is(err, av.ErrCapacityExceeded))
}

func TestAVCCReaderSkipsOversized(t *testing.T) {
	big := append([]byte{0x65}, make([]byte, 26)...)
	pps := []byte{0x68, 0xce, 0x38, 0x80}
	b, err := JoinAVCC([][]byte{big, pps}, 4)
	require.NoError(t, err)

	r := NewAVCCReader(bytes.NewReader(b), 4)
	r.MaxSize = 16
	_, err = r.ReadNALU()
	assert.True(t, errors.Is(err, av.ErrCapacityExceeded))

	got, err := r.ReadNALU()
	require.NoError(t, err)
	assert.Equal(t, pps, got)
	_, err = r.ReadNALU()
	assert.Equal(t, io.EOF, err)

	// a unit cut short while being skipped is malformed
	r = NewAVCCReader(bytes.NewReader(b[:10]), 4)
	r.MaxSize = 16
	_, err = r.ReadNALU()
	assert.True(t, errors.Is(err, av.ErrMalformedStream))
}

func TestNALUMVCHeaderRange(t *testing.T) {
	n := NewNALU(16)
	n.Type = NALU_PREFIX
	n.MVC = &MVCExtension{ViewID: 1 << 10, ReservedOneBit: 1}
	assert.Error(t, n.MarshalHeader())

	n.MVC = &MVCExtension{TemporalID: 8, ReservedOneBit: 1}
	assert.Error(t, n.MarshalHeader())

	n.MVC = &MVCExtension{SVCExtensionFlag: true, SVCBits: 1 << 23}
	assert.Error(t, n.MarshalHeader())

	n.MVC = &MVCExtension{SVCExtensionFlag: true, SVCBits: 0x7abcde}
	require.NoError(t, n.MarshalHeader())
	assert.Equal(t, []byte{0x0e, 0xfa, 0xbc, 0xde}, n.Buf)

	m := NewNALU(16)
	require.NoError(t, m.SetPayload(n.Buf))
	require.NoError(t, m.ParseHeader())
	require.NotNil(t, m.MVC)
	assert.True(t, m.MVC.SVCExtensionFlag)
	assert.Equal(t, uint32(0x7abcde), m.MVC.SVCBits)
}

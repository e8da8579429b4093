package format

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nareix/h264bits/codec/h264/annexb"
)

var testUnits = [][]byte{
	{0x67, 0x42, 0x00, 0x1e, 0x8d},
	{0x68, 0xce, 0x3c, 0x80},
	{0x65, 0x88, 0x84, 0x00, 0x00, 0x03, 0x01, 0x21},
	{0x41, 0x9a, 0x02},
}

func writeAll(t *testing.T, o *Opener, name string) {
	w, err := o.Create(name)
	require.NoError(t, err)
	for _, b := range testUnits {
		require.NoError(t, w.WriteNALU(b))
	}
	require.NoError(t, w.Close())
}

func readAll(t *testing.T, r *Reader) (out [][]byte) {
	for {
		b, err := r.ReadNALU()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, b)
	}
	require.NoError(t, r.Close())
	return
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindAnnexB, KindOf("a/b/foreman.264"))
	assert.Equal(t, KindAnnexB, KindOf("x.H264"))
	assert.Equal(t, KindAVCC, KindOf("http://host/x.avcc"))
	assert.Equal(t, KindUnknown, KindOf("x.flv"))
	assert.Equal(t, "annexb", KindAnnexB.String())
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.264", "out.avcc"} {
		p := filepath.Join(dir, name)
		o := NewOpener()
		writeAll(t, o, p)

		r, err := o.Open(p)
		require.NoError(t, err)
		assert.Equal(t, KindOf(name), r.Kind)
		assert.Equal(t, testUnits, readAll(t, r), name)
	}
}

func TestAnnexBFileLayout(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.h264")
	writeAll(t, NewOpener(), p)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, annexb.Join(testUnits), b)
}

func TestAVCCLengthSize(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.avcc")
	o := NewOpener()
	o.LengthSize = 2
	writeAll(t, o, p)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x05, 0x67}, b[:3])

	r, err := o.Open(p)
	require.NoError(t, err)
	assert.Equal(t, 2, r.AVCC.LengthSize)
	assert.Equal(t, testUnits, readAll(t, r))
}

func TestOpenerHooks(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.264")
	writeAll(t, NewOpener(), p)

	called := false
	o := NewOpener()
	o.MaxNALUSize = 4
	o.OnNewAnnexBReader = func(r *annexb.Reader) {
		called = true
		assert.Equal(t, 4, r.MaxSize)
	}
	r, err := o.Open(p)
	require.NoError(t, err)
	defer r.Close()
	assert.True(t, called)
	assert.NotNil(t, r.AnnexB)
	assert.Nil(t, r.AVCC)
}

func TestUnsupported(t *testing.T) {
	_, err := Open("movie.flv")
	assert.Error(t, err)
	_, err = Create("rtmp://host/live/x.264")
	assert.Error(t, err)
	_, err = Create(filepath.Join(t.TempDir(), "x.mp4"))
	assert.Error(t, err)
}

func TestOpenHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/live.264" {
			http.NotFound(w, req)
			return
		}
		w.Write(annexb.Join(testUnits))
	}))
	defer srv.Close()

	r, err := Open(srv.URL + "/live.264")
	require.NoError(t, err)
	assert.Equal(t, testUnits, readAll(t, r))

	_, err = Open(srv.URL + "/missing.264")
	assert.Error(t, err)
}
